package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// LiquidationFlag account flagged liquidatable by the scanner
type LiquidationFlag struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account string `sql:"size:36;unique_index:flag_idx" json:"account"`
	TraceID string `sql:"size:36" json:"trace_id"`
	// severity at scan time
	LFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"lfactor"`
	// per-asset breakdown for liquidation executors
	Content   types.JSONText `sql:"type:varchar(2048)" json:"content,omitempty"`
	Version   int64          `sql:"default:0" json:"version"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PutContent marshal payload into the content column
func (f *LiquidationFlag) PutContent(v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.Content = types.JSONText(bs)
	return nil
}

// IFlagStore liquidation flag store interface
type IFlagStore interface {
	Save(ctx context.Context, flag *LiquidationFlag) error
	Find(ctx context.Context, account string) (*LiquidationFlag, bool, error)
	List(ctx context.Context, limit int) ([]*LiquidationFlag, error)
	Delete(ctx context.Context, account string) error
}
