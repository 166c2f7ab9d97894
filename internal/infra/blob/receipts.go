package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refPrefix = "receipts/"

var (
	// ErrReceiptNotFound возвращается, когда чек не найден или истек
	ErrReceiptNotFound = errors.New("blob: receipt not found")

	// ErrInvalidRef возвращается для ссылки не из этого хранилища
	ErrInvalidRef = errors.New("blob: invalid receipt reference")

	// ErrEmptyReceipt возвращается для пустого содержимого
	ErrEmptyReceipt = errors.New("blob: empty receipt")

	// ErrStorage возвращается при ошибках Redis
	ErrStorage = errors.New("blob: storage error")
)

// Receipt содержимое чека
type Receipt struct {
	ContentType string
	Data        []byte
}

// ReceiptStore хранит чеки об оплате в Redis.
// Ссылка имеет вид "receipts/<uuid>", ключ в Redis "<prefix>:receipts/<uuid>".
type ReceiptStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewReceiptStore создает хранилище чеков. ttl == 0 - без срока хранения.
func NewReceiptStore(client *redis.Client, prefix string, ttl time.Duration) *ReceiptStore {
	if prefix == "" {
		prefix = "blob"
	}
	return &ReceiptStore{
		client:    client,
		keyPrefix: prefix,
		ttl:       ttl,
	}
}

// Put сохраняет чек и возвращает ссылку на него
func (s *ReceiptStore) Put(ctx context.Context, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyReceipt
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ref := refPrefix + uuid.NewString()
	key := s.key(ref)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "content_type", contentType, "data", data)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", ErrStorage, ref, err)
	}

	return ref, nil
}

// Get возвращает чек по ссылке
func (s *ReceiptStore) Get(ctx context.Context, ref string) (*Receipt, error) {
	if !ValidRef(ref) {
		return nil, ErrInvalidRef
	}

	values, err := s.client.HGetAll(ctx, s.key(ref)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorage, ref, err)
	}
	if len(values) == 0 {
		return nil, ErrReceiptNotFound
	}

	return &Receipt{
		ContentType: values["content_type"],
		Data:        []byte(values["data"]),
	}, nil
}

// Delete удаляет чек. Отсутствующий чек не считается ошибкой.
func (s *ReceiptStore) Delete(ctx context.Context, ref string) error {
	if !ValidRef(ref) {
		return ErrInvalidRef
	}

	if err := s.client.Del(ctx, s.key(ref)).Err(); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorage, ref, err)
	}
	return nil
}

// ValidRef проверяет формат ссылки "receipts/<uuid>"
func ValidRef(ref string) bool {
	id, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *ReceiptStore) key(ref string) string {
	return s.keyPrefix + ":" + ref
}
