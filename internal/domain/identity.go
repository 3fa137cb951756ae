package domain

// Status de conta em usuarios.status (valores herdados do schema original).
const (
	StatusAtivo   = "Ativo"
	StatusInativo = "Inativo"
)

// Identity é a identidade resolvida pelo interceptor de sessão e passada
// explicitamente para os services; nenhum estado de sessão vive em variável
// global de processo.
type Identity struct {
	UserID      string
	Nome        string
	NivelAcesso string
	Status      string
}

func (i Identity) IsActive() bool {
	return i.Status == StatusAtivo
}
