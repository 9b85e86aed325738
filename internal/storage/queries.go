package storage

const (
	getQuestionCountQuery   = "SELECT COUNT(*) FROM questions"
	deleteAllQuestionsQuery = "TRUNCATE questions RESTART IDENTITY CASCADE"

	// keeps the identity sequence ahead of explicitly imported ids
	syncQuestionSequenceQuery = `
		SELECT setval(pg_get_serial_sequence('questions', 'id'), GREATEST((SELECT MAX(id) FROM questions), 1))
	`

	upsertQuestionQuery = `
		INSERT INTO questions (id, title, topic, difficulty, company, content, embedding)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			topic = EXCLUDED.topic,
			difficulty = EXCLUDED.difficulty,
			company = EXCLUDED.company,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding
	`
)
