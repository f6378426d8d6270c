package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/inbound"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
)

// ProcessedMessageRepository persists the ingestion ledger. Unique-key
// violations from the store are translated to the domain sentinel errors so
// the pipeline can branch on them.
type ProcessedMessageRepository struct {
	db     *gorm.DB
	mapper *mappers.ProcessedMessageMapper
}

func NewProcessedMessageRepository(database *gorm.DB) *ProcessedMessageRepository {
	return &ProcessedMessageRepository{
		db:     database,
		mapper: mappers.NewProcessedMessageMapper(),
	}
}

func (r *ProcessedMessageRepository) Reserve(ctx context.Context, rec *inbound.Record) error {
	model := r.mapper.ToModel(rec)

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		if isDuplicateEntry(err) {
			return inbound.ErrDuplicateMessage
		}
		return fmt.Errorf("reserve message %s: %w", rec.MessageID(), err)
	}
	return rec.SetID(model.ID)
}

func (r *ProcessedMessageRepository) Update(ctx context.Context, rec *inbound.Record) error {
	model := r.mapper.ToModel(rec)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.ProcessedMessageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"owner_key":        model.OwnerKey,
			"linked_ticket_id": model.LinkedTicketID,
			"is_followup":      model.IsFollowup,
			"suppressed":       model.Suppressed,
			"processed_at":     model.ProcessedAt,
		})
	if result.Error != nil {
		// The only unique key an update can trip is the owner key.
		if isDuplicateEntry(result.Error) {
			return inbound.ErrConversationOwned
		}
		return fmt.Errorf("update record %s: %w", rec.MessageID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return inbound.ErrRecordNotFound
	}
	return nil
}

func (r *ProcessedMessageRepository) Delete(ctx context.Context, messageID string) error {
	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Where("message_id = ?", messageID).Delete(&models.ProcessedMessageModel{})
	if result.Error != nil {
		return fmt.Errorf("delete record %s: %w", messageID, result.Error)
	}
	if result.RowsAffected == 0 {
		return inbound.ErrRecordNotFound
	}
	return nil
}

func (r *ProcessedMessageRepository) GetByMessageID(ctx context.Context, messageID string) (*inbound.Record, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.ProcessedMessageModel
	if err := conn.Where("message_id = ?", messageID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inbound.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get record %s: %w", messageID, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ProcessedMessageRepository) ConversationOwner(ctx context.Context, conversationID string) (*inbound.Record, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var model models.ProcessedMessageModel
	err := conn.Where("owner_key = ?", conversationID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inbound.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get conversation owner %s: %w", conversationID, err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ProcessedMessageRepository) ListUnresolved(ctx context.Context, since time.Time) ([]*inbound.Record, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	// Records that never got a ticket, excluding suppressed ones and
	// conversations that resolved through another message.
	var rows []models.ProcessedMessageModel
	err := conn.
		Where("linked_ticket_id IS NULL").
		Where("suppressed = ?", false).
		Where("processed_at >= ?", since).
		Where("conversation_id NOT IN (?)",
			conn.Model(&models.ProcessedMessageModel{}).
				Select("conversation_id").
				Where("linked_ticket_id IS NOT NULL"),
		).
		Order("processed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list unresolved records: %w", err)
	}

	records := make([]*inbound.Record, 0, len(rows))
	for i := range rows {
		rec, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
