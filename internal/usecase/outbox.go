package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	CategoryCreated OutboxEventType = "category.created"
	CategoryUpdated OutboxEventType = "category.updated"
	CategoryDeleted OutboxEventType = "category.deleted"
	ProductCreated  OutboxEventType = "product.created"
	ProductUpdated  OutboxEventType = "product.updated"
	ProductDeleted  OutboxEventType = "product.deleted"
)

const (
	AggregateCategory = "category"
	AggregateProduct  = "product"
)

// OutboxEvent — событие изменения каталога, записанное в той же транзакции, что и само изменение.
type OutboxEvent struct {
	ID            int64
	EventID       string
	EventType     OutboxEventType
	AggregateType string
	AggregateID   int64
	Payload       []byte
	Status        OutboxStatus
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

type eventEnvelope struct {
	EventID     string          `json:"event_id"`
	EventType   OutboxEventType `json:"event_type"`
	Aggregate   string          `json:"aggregate"`
	AggregateID int64           `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Data        any             `json:"data,omitempty"`
}

type categoryEventData struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productEventData struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImgURL      string          `json:"img_url"`
	Date        time.Time       `json:"date"`
	CategoryIDs []int64         `json:"category_ids"`
}

// NewOutboxEvent собирает событие и сериализует конверт в JSON.
func NewOutboxEvent(eventType OutboxEventType, aggregate string, aggregateID int64, data any) (*OutboxEvent, error) {
	const op = "usecase.NewOutboxEvent"

	now := time.Now().UTC()
	eventID := uuid.NewString()

	payload, err := json.Marshal(eventEnvelope{
		EventID:     eventID,
		EventType:   eventType,
		Aggregate:   aggregate,
		AggregateID: aggregateID,
		OccurredAt:  now,
		Data:        data,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &OutboxEvent{
		EventID:       eventID,
		EventType:     eventType,
		AggregateType: aggregate,
		AggregateID:   aggregateID,
		Payload:       payload,
		Status:        Pending,
		CreatedAt:     now,
	}, nil
}

// MessageKey возвращает ключ партиционирования: события одного агрегата попадают в одну партицию.
func (o *OutboxEvent) MessageKey() []byte {
	return []byte(o.AggregateType + ":" + strconv.FormatInt(o.AggregateID, 10))
}

// eventRecorder пишет события в outbox внутри текущей транзакции.
type eventRecorder struct {
	repo OutboxRepository
}

func (r eventRecorder) record(ctx context.Context, eventType OutboxEventType, aggregate string, id int64, data any) error {
	event, err := NewOutboxEvent(eventType, aggregate, id, data)
	if err != nil {
		return err
	}

	_, err = r.repo.Create(ctx, event)
	return err
}

func newCategoryEventData(dto CategoryDTO) categoryEventData {
	return categoryEventData{ID: dto.ID, Name: dto.Name}
}

func newProductEventData(dto ProductDTO, categoryIDs []int64) productEventData {
	return productEventData{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		ImgURL:      dto.ImgURL,
		Date:        dto.Date,
		CategoryIDs: categoryIDs,
	}
}
