package mysql

import (
	"io/fs"
	"strings"
	"testing"

	"tgorders/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_DeclareMappedConstraints(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var schema strings.Builder
	for _, f := range files {
		data, err := fs.ReadFile(migrations, f)
		require.NoError(t, err)
		schema.Write(data)
	}

	for _, name := range []string{
		constraintGoodsParent,
		constraintOrderLineGoods,
		constraintGoodsFolderSKU,
		constraintGoodsGoodsSKU,
		constraintMarketName,
		constraintOrderMarket,
		constraintOrderCreator,
		constraintUserLevelCatalog,
	} {
		assert.Contains(t, schema.String(), name)
	}
}

func TestMigrations_SeedMatchesCatalog(t *testing.T) {
	data, err := fs.ReadFile(migrations, "migrations/00001_init.sql")
	require.NoError(t, err)

	for _, row := range po.CatalogRows() {
		assert.Contains(t, string(data), "'"+row.Name+"'")
	}
}
