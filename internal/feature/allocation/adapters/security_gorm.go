// Package adapters はallocationフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kse_backend/internal/feature/allocation/domain/entity"
	"kse_backend/internal/feature/allocation/usecase"
)

// securityGorm はPriceWriter（SecurityRepository含む）インターフェースのGORM実装です。
type securityGorm struct {
	db *gorm.DB
}

// securityGormがPriceWriterを実装していることをコンパイル時に検証します。
var _ usecase.PriceWriter = (*securityGorm)(nil)

// NewSecurityRepository は指定されたDB接続でsecurityGormリポジトリの新しいインスタンスを生成します。
func NewSecurityRepository(db *gorm.DB) *securityGorm {
	return &securityGorm{db: db}
}

// SecurityModel はsecuritiesテーブルの永続化モデルです。
// SortKeyはインデックス構成順（重みの降順）を保持し、この順序が
// カバレッジ選択の確定順になります。
type SecurityModel struct {
	ID        uint     `gorm:"primaryKey"`
	Symbol    string   `gorm:"size:32;not null;uniqueIndex"`
	Weight    float64  `gorm:"not null"`
	Price     *float64 // 有効な相場がない場合はNULL
	IsActive  bool     `gorm:"not null;default:true"`
	SortKey   int      `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (SecurityModel) TableName() string {
	return "securities"
}

// List はsort_key順にすべてのアクティブな銘柄を返します。
func (r *securityGorm) List(ctx context.Context) ([]entity.Security, error) {
	var rows []SecurityModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Security, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Security{
			Symbol: m.Symbol,
			Weight: m.Weight,
			Price:  m.Price,
		})
	}
	return out, nil
}

// UpdatePrices は保存されているシンボルをキーとする価格マップを適用します。
// マップにないシンボルの行は変更されません。全更新を1トランザクションで
// 行い、途中失敗時の部分更新を防ぎます。
func (r *securityGorm) UpdatePrices(ctx context.Context, prices map[string]float64) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for symbol, price := range prices {
			if err := tx.Model(&SecurityModel{}).
				Where("symbol = ?", symbol).
				Update("price", price).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
