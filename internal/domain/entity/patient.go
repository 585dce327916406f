package entity

import "time"

// Patient representa un paciente o estudiante registrado en la farmacia.
type Patient struct {
	ID         string
	Document   string // documento de identidad o carnet estudiantil
	Name       string
	Phone      string
	Email      string
	Address    string
	Notes      string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
