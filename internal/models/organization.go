package models

// Organization is a contract counterparty that owns guarded assets.
// It cannot be deleted while any asset still references it.
type Organization struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	INN        string `json:"inn,omitempty"`
	KPP        string `json:"kpp,omitempty"`
	Requisites string `json:"requisites,omitempty"`
	Contacts   string `json:"contacts,omitempty"`
}
