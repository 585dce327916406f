package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// PatientRepository define el puerto de persistencia para pacientes/estudiantes.
type PatientRepository interface {
	Create(patient *entity.Patient) error
	GetByID(id string) (*entity.Patient, error)
	GetByDocument(document string) (*entity.Patient, error)
	Update(patient *entity.Patient) error
	List(limit, offset int) ([]*entity.Patient, error)
}
