package catalog

import "github.com/google/uuid"

type Departamento struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome string
}

func (Departamento) TableName() string {
	return "departamentos"
}

type Cargo struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nome string
}

func (Cargo) TableName() string {
	return "cargos"
}
