package request

import "strings"

// Tipo de cliente resolvido por requisição. Clientes web recebem tokens em
// cookies HttpOnly; clientes mobile recebem os tokens no corpo da resposta.
const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType prioriza o header explícito X-Client-Type e cai para
// heurística de User-Agent quando ausente.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientMobile:
		return ClientMobile
	case ClientWeb:
		return ClientWeb
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") {
		return ClientMobile
	}
	return ClientWeb
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
