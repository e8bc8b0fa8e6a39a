package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&SecurityModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSecurity はテスト用の銘柄データをデータベースに作成します。
func seedSecurity(t *testing.T, db *gorm.DB, symbol string, weight float64, price *float64, isActive bool, sortKey int) {
	t.Helper()

	m := &SecurityModel{
		Symbol:   symbol,
		Weight:   weight,
		Price:    price,
		IsActive: isActive,
		SortKey:  sortKey,
	}
	err := db.Create(m).Error
	require.NoError(t, err, "failed to seed security")

	// SQLiteはINSERT時のboolean既定値の扱いが異なるため、明示的に更新する
	err = db.Model(m).Update("is_active", isActive).Error
	require.NoError(t, err, "failed to set active flag")
}

func fp(v float64) *float64 { return &v }

// TestSecurityGorm_List はインデックス順の取得と非アクティブ銘柄の除外を検証します。
func TestSecurityGorm_List(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	// sort_keyの逆順で投入し、Listが並べ替えることを確認する
	seedSecurity(t, db, "LUCK", 0.10, fp(1025.5), true, 2)
	seedSecurity(t, db, "OGDC", 0.12, fp(214.37), true, 1)
	seedSecurity(t, db, "MARI", 0.09, nil, true, 3)
	seedSecurity(t, db, "DEAD", 0.05, fp(10), false, 0)

	repo := NewSecurityRepository(db)
	got, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "OGDC", got[0].Symbol)
	assert.Equal(t, "LUCK", got[1].Symbol)
	assert.Equal(t, "MARI", got[2].Symbol)

	assert.Equal(t, 0.12, got[0].Weight)
	require.NotNil(t, got[0].Price)
	assert.Equal(t, 214.37, *got[0].Price)
	assert.Nil(t, got[2].Price, "missing price must stay nil")
}

// TestSecurityGorm_UpdatePrices は価格更新がマップ内のシンボルだけに
// 適用されることを検証します。
func TestSecurityGorm_UpdatePrices(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSecurity(t, db, "OGDC", 0.12, fp(200), true, 1)
	seedSecurity(t, db, "LUCK", 0.10, nil, true, 2)
	seedSecurity(t, db, "MARI", 0.09, fp(500), true, 3)

	repo := NewSecurityRepository(db)
	err := repo.UpdatePrices(context.Background(), map[string]float64{
		"OGDC": 214.37,
		"LUCK": 1025.5,
	})
	require.NoError(t, err)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].Price)
	assert.Equal(t, 214.37, *got[0].Price, "OGDC should be updated")
	require.NotNil(t, got[1].Price)
	assert.Equal(t, 1025.5, *got[1].Price, "LUCK should gain a price")
	require.NotNil(t, got[2].Price)
	assert.Equal(t, 500.0, *got[2].Price, "MARI must keep its previous price")
}

// TestSecurityGorm_UpdatePrices_Empty は空のマップで何も起きないことを検証します。
func TestSecurityGorm_UpdatePrices_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSecurityRepository(db)

	err := repo.UpdatePrices(context.Background(), nil)
	assert.NoError(t, err)
}
