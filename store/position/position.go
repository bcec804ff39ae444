package position

import (
	"context"

	"crossmargin/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if err := tx.Update().Where("account=? and asset_id=?", position.Account, position.AssetID).FirstOrCreate(position).Error; err != nil {
		return err
	}

	return nil
}

func (s *positionStore) Find(ctx context.Context, account, assetID string) (*core.Position, bool, error) {
	var position core.Position
	if err := s.db.View().Where("account=? and asset_id=?", account, assetID).First(&position).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return &position, false, nil
}

func (s *positionStore) FindByAccount(ctx context.Context, account string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("account=?", account).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++
	if err := tx.Update().Model(core.Position{}).Where("account=? and asset_id=? and version=?", position.Account, position.AssetID, version).Update(position).Error; err != nil {
		return err
	}

	return nil
}

func (s *positionStore) Delete(ctx context.Context, tx *db.DB, position *core.Position) error {
	if err := tx.Update().Where("account=? and asset_id=?", position.Account, position.AssetID).Delete(core.Position{}).Error; err != nil {
		return err
	}

	return nil
}

func (s *positionStore) Debtors(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := s.db.View().Model(core.Position{}).Where("debt_principal > 0").Pluck("distinct account", &accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *positionStore) All(ctx context.Context) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}
