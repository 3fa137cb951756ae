package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ArthurRocumback/Folha-de-Ponto/internal/events"
	"github.com/ArthurRocumback/Folha-de-Ponto/internal/timeclock"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePontoRegistrado mantém o agregado de frequência diária a partir dos
// eventos de ponto. O agregado é recalculado de registros_ponto a cada
// mensagem, então reprocessar mensagens após um commit de offset perdido
// converge para o mesmo valor em vez de contar em dobro.
func ConsumePontoRegistrado(
	ctx context.Context,
	reader *kafkago.Reader,
	timeclockService timeclock.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.ponto_registrado")
	log.Info("ponto registrado consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("ponto registrado consumer stopped")
				return
			}
			log.Error("fetch ponto registrado message failed", zap.Error(err))
			continue
		}

		var event events.PontoRegistradoEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode ponto registrado event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		horario, err := time.Parse(time.RFC3339, event.Horario)
		if err != nil {
			log.Error("invalid horario in ponto registrado event",
				zap.String("registro_id", event.RegistroID),
				zap.String("horario", event.Horario),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := timeclockService.RecordDailyPresence(ctx, event.UsuarioID, horario); err != nil {
			log.Error("record daily presence failed",
				zap.String("registro_id", event.RegistroID),
				zap.String("usuario_id", event.UsuarioID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit ponto registrado message failed", zap.Error(err))
			continue
		}

		log.Info("daily presence updated from ponto event",
			zap.String("usuario_id", event.UsuarioID),
			zap.String("tipo", event.Tipo),
		)
	}
}
