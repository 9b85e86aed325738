package learning

const (
	queryCategories = `
		SELECT id, name, COALESCE(description, ''), sort_order, COALESCE(icon, '')
		FROM learning_categories
		ORDER BY sort_order, id
	`

	queryTopics = `
		SELECT id, category_id, name, COALESCE(description, ''), sort_order, COALESCE(icon, '')
		FROM learning_topics
		WHERE ($1::bigint = 0 OR category_id = $1)
		ORDER BY category_id, sort_order, id
	`

	queryTopic = `
		SELECT id, category_id, name, COALESCE(description, ''), sort_order, COALESCE(icon, '')
		FROM learning_topics
		WHERE id = $1
	`

	queryContentByTopic = `
		SELECT id, topic_id, title, content_type, content, sort_order, COALESCE(metadata, '{}'::jsonb), created_at, updated_at
		FROM learning_content
		WHERE topic_id = $1
		ORDER BY sort_order, id
	`

	queryContent = `
		SELECT id, topic_id, title, content_type, content, sort_order, COALESCE(metadata, '{}'::jsonb), created_at, updated_at
		FROM learning_content
		WHERE id = $1
	`

	queryProgressByUser = `
		SELECT id, user_id, topic_id, completed, progress_percentage, last_accessed
		FROM learning_progress
		WHERE user_id = $1
	`

	queryProgressForTopic = `
		SELECT id, user_id, topic_id, completed, progress_percentage, last_accessed
		FROM learning_progress
		WHERE user_id = $1 AND topic_id = $2
	`

	// a nil completed flag keeps the stored value
	queryUpsertProgress = `
		INSERT INTO learning_progress (user_id, topic_id, progress_percentage, completed)
		VALUES ($1, $2, $3, COALESCE($4, FALSE))
		ON CONFLICT (user_id, topic_id) DO UPDATE SET
			progress_percentage = EXCLUDED.progress_percentage,
			completed = COALESCE($4, learning_progress.completed),
			last_accessed = NOW()
		RETURNING id, user_id, topic_id, completed, progress_percentage, last_accessed
	`
)
