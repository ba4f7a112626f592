package model

type StatusCheck struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	Timestamp  string `json:"timestamp"`
}

type StatusCheckCreate struct {
	ClientName string `json:"client_name"`
}
