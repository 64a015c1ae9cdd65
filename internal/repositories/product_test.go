package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxfur/internal/models"
)

func newMockProductRepository(t *testing.T) (*ProductRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewProductRepository(db), mock, db
}

var productTestColumns = []string{
	"id", "name", "slug", "price", "quantity", "material", "description",
	"vendor_code", "category_id", "height", "length", "width", "created_at", "updated_at",
}

func productRow(rows *sqlmock.Rows, id int, name, slug, price string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, name, slug, price, 10, "oak", "", nil, 1, 0.0, 0.0, 0.0, now, now)
}

func TestProductRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		rows := productRow(sqlmock.NewRows(productTestColumns), 1, "Sofa", "sofa", "1500.00")
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(rows)

		product, err := repo.GetByID(1)

		require.NoError(t, err)
		assert.Equal(t, 1, product.ID)
		assert.Equal(t, "sofa", product.Slug)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("1500.00")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(42)

		assert.ErrorIs(t, err, models.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_GetBySlug(t *testing.T) {
	repo, mock, db := newMockProductRepository(t)
	defer db.Close()

	rows := productRow(sqlmock.NewRows(productTestColumns), 2, "Armchair", "armchair", "750.00")
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE slug = \$1`).
		WithArgs("armchair").
		WillReturnRows(rows)

	product, err := repo.GetBySlug("armchair")

	require.NoError(t, err)
	assert.Equal(t, 2, product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByIDs(t *testing.T) {
	t.Run("bulk fetch", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		rows := sqlmock.NewRows(productTestColumns)
		productRow(rows, 1, "Sofa", "sofa", "1500.00")
		productRow(rows, 2, "Armchair", "armchair", "750.00")

		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = ANY\(\$1\)`).
			WithArgs(pq.Array([]int{1, 2})).
			WillReturnRows(rows)

		products, err := repo.GetByIDs([]int{1, 2})

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id set skips the query", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		products, err := repo.GetByIDs(nil)

		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_List(t *testing.T) {
	t.Run("all products", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		rows := productRow(sqlmock.NewRows(productTestColumns), 1, "Sofa", "sofa", "1500.00")
		mock.ExpectQuery(`SELECT (.+) FROM products ORDER BY created_at DESC`).
			WillReturnRows(rows)

		products, err := repo.List("")

		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with search filter", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		rows := productRow(sqlmock.NewRows(productTestColumns), 1, "Oak Sofa", "oak-sofa", "1500.00")
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE name ILIKE (.+) OR material ILIKE (.+) ORDER BY created_at DESC`).
			WithArgs("oak").
			WillReturnRows(rows)

		products, err := repo.List("oak")

		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_ListByCategory(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT id FROM categories WHERE slug = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.ListByCategory("missing")

		assert.ErrorIs(t, err, models.ErrCategoryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("category products", func(t *testing.T) {
		repo, mock, db := newMockProductRepository(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT id FROM categories WHERE slug = \$1`).
			WithArgs("sofas").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		rows := productRow(sqlmock.NewRows(productTestColumns), 1, "Sofa", "sofa", "1500.00")
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE category_id = \$1 ORDER BY created_at DESC`).
			WithArgs(3).
			WillReturnRows(rows)

		products, err := repo.ListByCategory("sofas")

		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_ListCategories(t *testing.T) {
	repo, mock, db := newMockProductRepository(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "slug"}).
		AddRow(1, "Armchairs", "armchairs").
		AddRow(2, "Sofas", "sofas")
	mock.ExpectQuery(`SELECT id, name, slug FROM categories ORDER BY name`).
		WillReturnRows(rows)

	categories, err := repo.ListCategories()

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "armchairs", categories[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
