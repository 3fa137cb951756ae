package geo

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Rótulos de localização gravados em registros_ponto.endereco. O registro de
// ponto nunca fica sem rótulo: na pior hipótese degrada para um dos fallbacks.
const (
	LabelOffice       = "Escritório"
	LabelUnavailable  = "Localização não disponível"
	LabelUnidentified = "Localização não identificada"
	LabelNotProvided  = "Localização não informada"
)

const earthRadiusMeters = 6371000.0

type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance calcula a distância de círculo máximo em metros (haversine).
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Address são os campos que o serviço de geocodificação reversa pode devolver.
// Qualquer um deles pode vir vazio.
type Address struct {
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	State         string `json:"state"`
}

type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Address, error)
}

// Classifier transforma um par de coordenadas em um rótulo estável de local.
// Classify é total: para qualquer coordenada finita devolve string não vazia
// e nunca propaga erro do geocoder.
type Classifier interface {
	Classify(ctx context.Context, lat, lon float64) string
}

type Config struct {
	Office       Point
	RadiusMeters float64
}

const DefaultRadiusMeters = 150.0

type classifier struct {
	office   Point
	radius   float64
	geocoder Geocoder
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

// NewClassifier monta o classificador geográfico. rdb é opcional: sem Redis o
// classificador apenas deixa de cachear rótulos resolvidos.
func NewClassifier(cfg Config, geocoder Geocoder, rdb *redis.Client, logger *zap.Logger) Classifier {
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = DefaultRadiusMeters
	}
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &classifier{
		office:   cfg.Office,
		radius:   cfg.RadiusMeters,
		geocoder: geocoder,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l.Named("geo.classifier"),
	}
}

func (c *classifier) Classify(ctx context.Context, lat, lon float64) string {
	// Caminho comum e barato: dentro do raio do escritório não há chamada externa.
	if Distance(c.office, Point{Latitude: lat, Longitude: lon}) <= c.radius {
		return LabelOffice
	}

	// ~11m de precisão na chave; geocodificação reversa não resolve mais fino.
	key := fmt.Sprintf("geo:endereco:%.4f:%.4f", lat, lon)

	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached
		}
	}

	v, _, _ := c.sf.Do(key, func() (any, error) {
		return c.lookup(ctx, lat, lon), nil
	})
	label := v.(string)

	if c.rdb != nil && label != LabelUnavailable {
		if err := c.rdb.Set(ctx, key, label, 24*time.Hour).Err(); err != nil {
			c.logger.Warn("cache geocode label failed", zap.Error(err))
		}
	}

	return label
}

func (c *classifier) lookup(ctx context.Context, lat, lon float64) string {
	addr, err := c.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("reverse geocode failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return LabelUnavailable
	}

	return formatLabel(addr)
}

// formatLabel monta o rótulo em ordem de preferência: bairro+cidade,
// depois cidade+UF, senão o genérico de local não identificado.
func formatLabel(addr Address) string {
	bairro := firstNonEmpty(addr.Suburb, addr.Neighbourhood)
	cidade := firstNonEmpty(addr.City, addr.Town)

	switch {
	case bairro != "" && cidade != "":
		if addr.State != "" {
			return fmt.Sprintf("%s - %s/%s", bairro, cidade, addr.State)
		}
		return fmt.Sprintf("%s - %s", bairro, cidade)
	case cidade != "":
		if addr.State != "" {
			return fmt.Sprintf("%s/%s", cidade, addr.State)
		}
		return cidade
	default:
		return LabelUnidentified
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
