package questions

const questionColumns = `
	q.id, q.title, q.content, q.difficulty, q.topic, COALESCE(q.company, ''),
	COALESCE(q.code_template, ''), COALESCE(q.hints, '[]'::jsonb),
	COALESCE(q.solution, ''), COALESCE(q.test_cases, '[]'::jsonb), q.created_at
`

const (
	queryList = `
		SELECT` + questionColumns + `
		FROM questions q
		WHERE ($1 = '' OR q.topic = $1)
		  AND ($2 = '' OR q.difficulty = $2)
		  AND ($3 = '' OR q.company = $3)
		ORDER BY q.id
		LIMIT $4 OFFSET $5
	`

	queryCount = `
		SELECT COUNT(*)
		FROM questions q
		WHERE ($1 = '' OR q.topic = $1)
		  AND ($2 = '' OR q.difficulty = $2)
		  AND ($3 = '' OR q.company = $3)
	`

	queryGet = `
		SELECT` + questionColumns + `
		FROM questions q
		WHERE q.id = $1
	`

	queryByIDs = `
		SELECT` + questionColumns + `
		FROM questions q
		WHERE q.id = ANY($1)
	`

	queryCreate = `
		INSERT INTO questions (title, content, difficulty, topic, company, code_template, solution, test_cases, hints, embedding)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), COALESCE($8::jsonb, '[]'::jsonb), COALESCE($9::jsonb, '[]'::jsonb), $10)
		RETURNING id
	`

	queryUpdateContent = `
		UPDATE questions SET content = $1 WHERE id = $2
	`

	queryIsFavorite = `
		SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND question_id = $2)
	`

	queryAddFavorite = `
		INSERT INTO favorites (user_id, question_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, question_id) DO NOTHING
	`

	queryRemoveFavorite = `
		DELETE FROM favorites WHERE user_id = $1 AND question_id = $2
	`

	queryListFavorites = `
		SELECT f.id, f.created_at,` + questionColumns + `
		FROM favorites f
		JOIN questions q ON q.id = f.question_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	// a view counts as an attempt; completion is sticky
	queryRecordPractice = `
		INSERT INTO practice_history (user_id, question_id, completed)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			completed = practice_history.completed OR EXCLUDED.completed,
			attempts = practice_history.attempts + 1,
			last_practiced = NOW()
		RETURNING id, user_id, question_id, completed, attempts, last_practiced
	`

	queryHistory = `
		SELECT h.id, h.user_id, h.question_id, q.title, q.topic, q.difficulty, h.completed, h.attempts, h.last_practiced
		FROM practice_history h
		JOIN questions q ON q.id = h.question_id
		WHERE h.user_id = $1
		ORDER BY h.last_practiced DESC
	`
)
