package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Chaves de configuração do agendamento
const (
	KeyDepositPercentage     = "deposit.percentage"
	KeyHoldMinutes           = "deposit.hold_minutes"
	KeyExpirationBeforeStart = "deposit.expiration_before_start"
	KeyBufferMinutes         = "booking.buffer_minutes"
	KeyBufferTimeOff         = "booking.buffer_time_off"
)

const cacheTTL = 5 * time.Minute

// Store lê configuração chave/valor por tenant com cache read-through no
// Redis. Leitura é fail-open: qualquer falha de cache ou banco devolve o
// default — configuração afeta conveniência, nunca isolamento.
type Store struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewStore(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

func cacheKey(tenantID uint, key string) string {
	return fmt.Sprintf("settings:%d:%s", tenantID, key)
}

func (s *Store) raw(ctx context.Context, tenantID uint, key string) (string, bool) {
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, cacheKey(tenantID, key)).Result(); err == nil {
			return v, true
		} else if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("key", key).Debug("settings cache read failed")
		}
	}

	var row models.TenantSetting
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND key = ?", tenantID, key).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("key", key).Warn("settings read failed, using default")
		}
		return "", false
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey(tenantID, key), row.Value, cacheTTL).Err(); err != nil {
			logrus.WithError(err).Debug("settings cache write failed")
		}
	}

	return row.Value, true
}

func (s *Store) Number(ctx context.Context, tenantID uint, key string, def float64) float64 {
	v, ok := s.raw(ctx, tenantID, key)
	if !ok {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return n
}

func (s *Store) Int(ctx context.Context, tenantID uint, key string, def int) int {
	v, ok := s.raw(ctx, tenantID, key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *Store) String(ctx context.Context, tenantID uint, key string, def string) string {
	v, ok := s.raw(ctx, tenantID, key)
	if !ok {
		return def
	}
	return v
}

func (s *Store) Bool(ctx context.Context, tenantID uint, key string, def bool) bool {
	v, ok := s.raw(ctx, tenantID, key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Set grava e invalida o cache. Escrita não é fail-open.
func (s *Store) Set(ctx context.Context, tenantID uint, key string, value string) error {
	row := models.TenantSetting{TenantID: tenantID, Key: key, Value: value}

	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND key = ?", tenantID, key).
		Assign(map[string]any{"value": value}).
		FirstOrCreate(&row).Error
	if err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cacheKey(tenantID, key)).Err(); err != nil {
			logrus.WithError(err).Debug("settings cache invalidation failed")
		}
	}

	return nil
}

// List devolve todas as chaves do tenant (tela de configuração).
func (s *Store) List(ctx context.Context, tenantID uint) ([]models.TenantSetting, error) {
	var rows []models.TenantSetting
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("key ASC").
		Find(&rows).Error
	return rows, err
}
