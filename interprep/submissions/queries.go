package submissions

const submissionColumns = `
	s.id, s.user_id, s.question_id, q.title, s.code, s.language, s.status,
	s.runtime, s.memory, COALESCE(s.feedback, ''), s.created_at
`

const (
	queryCreate = `
		INSERT INTO submissions (user_id, question_id, code, language, status, runtime, memory, feedback)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING id
	`

	queryGet = `
		SELECT` + submissionColumns + `
		FROM submissions s
		JOIN questions q ON q.id = s.question_id
		WHERE s.id = $1 AND s.user_id = $2
	`

	queryList = `
		SELECT` + submissionColumns + `
		FROM submissions s
		JOIN questions q ON q.id = s.question_id
		WHERE s.user_id = $1
		  AND ($2::bigint = 0 OR s.question_id = $2)
		  AND ($3 = '' OR s.status = $3)
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $4 OFFSET $5
	`

	queryCount = `
		SELECT COUNT(*)
		FROM submissions s
		WHERE s.user_id = $1
		  AND ($2::bigint = 0 OR s.question_id = $2)
		  AND ($3 = '' OR s.status = $3)
	`

	queryStatusCounts = `
		SELECT status, COUNT(*) FROM submissions WHERE user_id = $1 GROUP BY status
	`
)
