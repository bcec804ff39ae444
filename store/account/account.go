package account

import (
	"context"

	"crossmargin/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	if err := tx.Update().Where("address=?", account.Address).FirstOrCreate(account).Error; err != nil {
		return err
	}

	return nil
}

func (s *accountStore) Find(ctx context.Context, address string) (*core.Account, bool, error) {
	var account core.Account
	if err := s.db.View().Where("address=?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return &account, false, nil
}

func (s *accountStore) Update(ctx context.Context, tx *db.DB, account *core.Account) error {
	version := account.Version
	account.Version++
	if err := tx.Update().Model(core.Account{}).Where("address=? and version=?", account.Address, version).Update(account).Error; err != nil {
		return err
	}

	return nil
}
