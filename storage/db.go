package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DurableValue struct {
	Key       string `gorm:"primaryKey;type:varchar(191)"`
	Value     string `gorm:"type:longtext;not null"`
	UpdatedAt int64
}

// DBStore keeps values in the durable_values table of a SQL database
type DBStore struct {
	instance *gorm.DB
}

func NewDBStore(instance *gorm.DB) (*DBStore, error) {
	if err := instance.AutoMigrate(&DurableValue{}); err != nil {
		return nil, err
	}
	return &DBStore{instance: instance}, nil
}

func (s *DBStore) Get(key string) (string, bool, error) {
	var v DurableValue
	err := s.instance.Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v.Value, true, nil
}

func (s *DBStore) Set(key, value string) error {
	v := DurableValue{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().Unix(),
	}
	return s.instance.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&v).Error
}
