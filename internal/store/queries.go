package store

// SQL query constants organized by entity.
// All SQL lives here — PostgresStore methods reference these constants.

// Product queries.
const (
	queryCreateProduct = `
		INSERT INTO products (
			id, title, category, brand,
			condition_grade, condition_score, status,
			created_at, updated_at
		) VALUES (
			@id, @title, @category, @brand,
			@condition_grade, @condition_score, @status,
			now(), now()
		)
		RETURNING created_at, updated_at`

	queryGetProduct = `
		SELECT id, title, category, COALESCE(brand, ''),
			condition_grade, condition_score, status, created_at, updated_at
		FROM products
		WHERE id = $1`

	queryUpdateProduct = `
		UPDATE products SET
			title = @title,
			category = @category,
			brand = @brand,
			condition_grade = @condition_grade,
			condition_score = @condition_score,
			status = @status,
			updated_at = now()
		WHERE id = @id
		RETURNING updated_at`

	queryDeleteProduct = `DELETE FROM products WHERE id = $1`

	queryCountProductsByStatus = `
		SELECT status, COUNT(*)
		FROM products
		GROUP BY status`
)

// Analysis queries.
const (
	querySaveAnalysis = `
		INSERT INTO analyses (
			id, product_id, strategy, position, analysis, created_at
		) VALUES (
			@id, @product_id, @strategy, @position, @analysis, now()
		)
		RETURNING created_at`

	queryGetAnalysis = `
		SELECT id, product_id, strategy, position, analysis, created_at
		FROM analyses
		WHERE id = $1`

	queryListAnalyses = `
		SELECT id, product_id, strategy, position, analysis, created_at
		FROM analyses
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	queryLatestAnalysis = `
		SELECT id, product_id, strategy, position, analysis, created_at
		FROM analyses
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
)
