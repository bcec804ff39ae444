package flag

import (
	"context"

	"crossmargin/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type flagStore struct {
	db *db.DB
}

// New new liquidation flag store
func New(db *db.DB) core.IFlagStore {
	return &flagStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.LiquidationFlag{})
		if err := tx.AutoMigrate(core.LiquidationFlag{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *flagStore) Save(ctx context.Context, flag *core.LiquidationFlag) error {
	var existing core.LiquidationFlag
	if err := s.db.Update().Where("account=?", flag.Account).First(&existing).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return s.db.Update().Create(flag).Error
		}
		return err
	}

	existing.LFactor = flag.LFactor
	existing.TraceID = flag.TraceID
	existing.Content = flag.Content
	version := existing.Version
	existing.Version++
	if err := s.db.Update().Model(core.LiquidationFlag{}).Where("account=? and version=?", existing.Account, version).Update(existing).Error; err != nil {
		return err
	}

	*flag = existing
	return nil
}

func (s *flagStore) Find(ctx context.Context, account string) (*core.LiquidationFlag, bool, error) {
	var flag core.LiquidationFlag
	if err := s.db.View().Where("account=?", account).First(&flag).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return &flag, false, nil
}

func (s *flagStore) List(ctx context.Context, limit int) ([]*core.LiquidationFlag, error) {
	var flags []*core.LiquidationFlag
	if err := s.db.View().Order("lfactor desc").Limit(limit).Find(&flags).Error; err != nil {
		return nil, err
	}

	return flags, nil
}

func (s *flagStore) Delete(ctx context.Context, account string) error {
	if err := s.db.Update().Where("account=?", account).Delete(core.LiquidationFlag{}).Error; err != nil {
		return err
	}

	return nil
}
