package timeclock

// Coordinates exige o par completo: latitude sem longitude (ou vice-versa)
// falha na validação do binding.
type Coordinates struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type PunchRequest struct {
	Tipo        string       `json:"tipo"`
	Localizacao *Coordinates `json:"localizacao"`
}

// ClientMeta vem do transporte e serve só para auditoria; não participa da
// classificação de localização.
type ClientMeta struct {
	IP        string
	UserAgent string
}

type ClockEventResponse struct {
	ID        string   `json:"id"`
	Tipo      string   `json:"tipo"`
	Horario   string   `json:"horario"`
	Endereco  string   `json:"endereco"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
