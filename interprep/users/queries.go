package users

const userColumns = `
	u.id, u.username, u.email, u.password_hash, u.provider, u.is_active, u.created_at, u.last_login,
	COALESCE(p.full_name, ''), COALESCE(p.bio, ''),
	COALESCE(p.preferences, '{}'::jsonb), COALESCE(p.settings, '{}'::jsonb)
`

const (
	queryCreate = `
		WITH inserted AS (
			INSERT INTO users (username, email, password_hash, provider)
			VALUES ($1, $2, $3, 'local')
			RETURNING id
		)
		INSERT INTO user_profiles (user_id)
		SELECT id FROM inserted
		RETURNING user_id
	`

	queryFindByID = `
		SELECT` + userColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	queryFindByUsername = `
		SELECT` + userColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.username = $1
	`

	queryFindByEmail = `
		SELECT` + userColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.email = $1
	`

	queryFindOrCreateByProvider = `
		WITH upserted AS (
			INSERT INTO users (username, email, password_hash, provider, provider_id)
			VALUES ($1, $2, '', $3, $4)
			ON CONFLICT (provider, provider_id)
			DO UPDATE SET email = EXCLUDED.email
			RETURNING id
		)
		INSERT INTO user_profiles (user_id, full_name)
		SELECT id, $5 FROM upserted
		ON CONFLICT (user_id) DO NOTHING
	`

	queryFindByProvider = `
		SELECT` + userColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.provider = $1 AND u.provider_id = $2
	`

	queryTouchLastLogin = `
		UPDATE users SET last_login = NOW() WHERE id = $1
	`

	queryUpdateAccount = `
		UPDATE users
		SET email = COALESCE($1, email),
			password_hash = COALESCE($2, password_hash)
		WHERE id = $3
	`

	queryUpsertProfile = `
		INSERT INTO user_profiles (user_id, full_name, bio, preferences, settings)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4::jsonb, '{}'::jsonb), COALESCE($5::jsonb, '{}'::jsonb))
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = COALESCE($2, user_profiles.full_name),
			bio = COALESCE($3, user_profiles.bio),
			preferences = COALESCE($4::jsonb, user_profiles.preferences),
			settings = COALESCE($5::jsonb, user_profiles.settings)
	`

	queryStats = `
		SELECT
			(SELECT COUNT(*) FROM submissions WHERE user_id = $1),
			(SELECT COUNT(*) FROM submissions WHERE user_id = $1 AND status = 'accepted'),
			(SELECT COUNT(*) FROM submissions WHERE user_id = $1 AND status NOT IN ('accepted', 'pending')),
			(SELECT COUNT(*) FROM submissions WHERE user_id = $1 AND status = 'pending'),
			(SELECT COUNT(*) FROM favorites WHERE user_id = $1),
			(SELECT COUNT(*) FROM practice_history WHERE user_id = $1),
			(SELECT COUNT(*) FROM practice_history WHERE user_id = $1 AND completed)
	`
)
