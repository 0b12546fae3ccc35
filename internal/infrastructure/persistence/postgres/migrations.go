package postgres

// GetMigrations returns all embedded migrations in version order.
//
// Business keys carry UNIQUE constraints so re-uploading a file is
// idempotent: the ingestion layer inserts with ON CONFLICT DO NOTHING and
// counts the conflicts as skipped rows. company_visits deliberately has no
// business key, one company can visit a cohort many times.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_cohort_master",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS cohort_master (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) UNIQUE NOT NULL,
					year INTEGER NOT NULL,
					program VARCHAR(20) NOT NULL,
					batch_size INTEGER NOT NULL,
					phase VARCHAR(20) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_cohort_master_phase ON cohort_master(phase);
				CREATE INDEX IF NOT EXISTS idx_cohort_master_program ON cohort_master(program);
				CREATE INDEX IF NOT EXISTS idx_cohort_master_year ON cohort_master(year);
			`,
			DownSQL: `DROP TABLE IF EXISTS cohort_master;`,
		},
		{
			Version: 2,
			Name:    "create_company_visits",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS company_visits (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					company_name VARCHAR(100) NOT NULL,
					visit_date DATE NOT NULL,
					role_title VARCHAR(100) NOT NULL,
					role_family VARCHAR(50) NOT NULL,
					tier VARCHAR(20) NOT NULL,
					sector VARCHAR(50) NOT NULL,
					geography VARCHAR(50) NOT NULL,
					is_repeat_recruiter BOOLEAN NOT NULL DEFAULT FALSE,
					openings_announced INTEGER NOT NULL,
					applicants_attended INTEGER NOT NULL,
					interview_slots INTEGER NOT NULL,
					shortlisted INTEGER NOT NULL,
					offers_issued INTEGER NOT NULL,
					joined_count INTEGER NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_company_visits_cohort_id ON company_visits(cohort_id);
				CREATE INDEX IF NOT EXISTS idx_company_visits_visit_date ON company_visits(visit_date);
			`,
			DownSQL: `DROP TABLE IF EXISTS company_visits;`,
		},
		{
			Version: 3,
			Name:    "create_placements_cohort",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS placements_cohort (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					eligible INTEGER NOT NULL,
					applied INTEGER NOT NULL,
					shortlisted INTEGER NOT NULL,
					offers INTEGER NOT NULL,
					placed INTEGER NOT NULL,
					avg_package DECIMAL(10,2) NOT NULL,
					median_package DECIMAL(10,2) NOT NULL,
					highest_package DECIMAL(10,2) NOT NULL,
					tier1_offers INTEGER NOT NULL,
					tier2_offers INTEGER NOT NULL,
					startup_offers INTEGER NOT NULL,
					psu_offers INTEGER NOT NULL,
					tech_role_share_pct DECIMAL(5,2) NOT NULL,
					finance_role_share_pct DECIMAL(5,2) NOT NULL,
					consulting_role_share_pct DECIMAL(5,2) NOT NULL,
					other_role_share_pct DECIMAL(5,2) NOT NULL,
					avg_conversion_per_visit_pct DECIMAL(5,2) NOT NULL,
					avg_openings_per_visit DECIMAL(5,2) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					CONSTRAINT placements_cohort_business_key UNIQUE (cohort_id, phase)
				);

				CREATE INDEX IF NOT EXISTS idx_placements_cohort_cohort_id ON placements_cohort(cohort_id);
			`,
			DownSQL: `DROP TABLE IF EXISTS placements_cohort;`,
		},
		{
			Version: 4,
			Name:    "create_jpt_cohort",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS jpt_cohort (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					total_jpt_sessions INTEGER NOT NULL,
					avg_sessions_per_student DECIMAL(5,2) NOT NULL,
					avg_ai_confidence DECIMAL(5,2) NOT NULL,
					avg_ai_communication DECIMAL(5,2) NOT NULL,
					avg_ai_technical DECIMAL(5,2) NOT NULL,
					prejpt_conv_rate_per_opening_pct DECIMAL(5,2) NOT NULL,
					postjpt_conv_rate_per_opening_pct DECIMAL(5,2) NOT NULL,
					conversion_boost_per_opening_pct DECIMAL(5,2) NOT NULL,
					tier1_offers_before INTEGER NOT NULL,
					tier1_offers_after INTEGER NOT NULL,
					avg_package_before DECIMAL(10,2) NOT NULL,
					avg_package_after DECIMAL(10,2) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					CONSTRAINT jpt_cohort_business_key UNIQUE (cohort_id, phase)
				);

				CREATE INDEX IF NOT EXISTS idx_jpt_cohort_cohort_id ON jpt_cohort(cohort_id);
			`,
			DownSQL: `DROP TABLE IF EXISTS jpt_cohort;`,
		},
		{
			Version: 5,
			Name:    "create_tutor_sessions",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS tutor_sessions (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					unit_code VARCHAR(20) NOT NULL,
					unit_name VARCHAR(100) NOT NULL,
					session_id VARCHAR(50) UNIQUE NOT NULL,
					session_type VARCHAR(50) NOT NULL,
					created_week VARCHAR(20) NOT NULL,
					assigned_count INTEGER NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_tutor_sessions_cohort_id ON tutor_sessions(cohort_id);
				CREATE INDEX IF NOT EXISTS idx_tutor_sessions_unit_code ON tutor_sessions(unit_code);
			`,
			DownSQL: `DROP TABLE IF EXISTS tutor_sessions;`,
		},
		{
			Version: 6,
			Name:    "create_tutor_session_utilization",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS tutor_session_utilization (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					session_id VARCHAR(50) NOT NULL REFERENCES tutor_sessions(session_id),
					week VARCHAR(20) NOT NULL,
					started_count INTEGER NOT NULL,
					completed_count INTEGER NOT NULL,
					avg_trs DECIMAL(5,2) NOT NULL,
					highest_trs DECIMAL(5,2) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					CONSTRAINT tutor_session_utilization_business_key UNIQUE (session_id, week)
				);

				CREATE INDEX IF NOT EXISTS idx_tutor_session_utilization_session_id ON tutor_session_utilization(session_id);
			`,
			DownSQL: `DROP TABLE IF EXISTS tutor_session_utilization;`,
		},
		{
			Version: 7,
			Name:    "create_tutor_weekly_summary",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS tutor_weekly_summary (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					week VARCHAR(20) NOT NULL,
					sessions_created_this_week INTEGER NOT NULL,
					overall_utilization_this_week_pct DECIMAL(5,2) NOT NULL,
					units_with_sessions_count INTEGER NOT NULL,
					units_adopted_pct DECIMAL(5,2) NOT NULL,
					active_users_pct DECIMAL(5,2) NOT NULL,
					avg_sessions_per_student DECIMAL(5,2) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					CONSTRAINT tutor_weekly_summary_business_key UNIQUE (cohort_id, phase, week)
				);

				CREATE INDEX IF NOT EXISTS idx_tutor_weekly_summary_cohort_id ON tutor_weekly_summary(cohort_id);
				CREATE INDEX IF NOT EXISTS idx_tutor_weekly_summary_week ON tutor_weekly_summary(week);
			`,
			DownSQL: `DROP TABLE IF EXISTS tutor_weekly_summary;`,
		},
		{
			Version: 8,
			Name:    "create_tutor_cohort_summary",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS tutor_cohort_summary (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					active_users_pct DECIMAL(5,2) NOT NULL,
					units_with_sessions_count INTEGER NOT NULL,
					units_adopted_pct DECIMAL(5,2) NOT NULL,
					avg_sessions_per_student DECIMAL(5,2) NOT NULL,
					pretutor_exam_avg DECIMAL(5,2) NOT NULL,
					posttutor_exam_avg DECIMAL(5,2) NOT NULL,
					pretutor_assignment_avg DECIMAL(5,2) NOT NULL,
					posttutor_assignment_avg DECIMAL(5,2) NOT NULL,
					pass_percentage DECIMAL(5,2) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					CONSTRAINT tutor_cohort_summary_business_key UNIQUE (cohort_id, phase)
				);

				CREATE INDEX IF NOT EXISTS idx_tutor_cohort_summary_cohort_id ON tutor_cohort_summary(cohort_id);
			`,
			DownSQL: `DROP TABLE IF EXISTS tutor_cohort_summary;`,
		},
		{
			Version: 9,
			Name:    "create_mentor_cohort",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS mentor_cohort (
					id SERIAL PRIMARY KEY,
					cohort_id VARCHAR(50) NOT NULL REFERENCES cohort_master(cohort_id),
					phase VARCHAR(20) NOT NULL,
					prementor_capstone_grade_avg DECIMAL(5,2) NOT NULL,
					postmentor_capstone_grade_avg DECIMAL(5,2) NOT NULL,
					grade_a_distribution_pct_pre DECIMAL(5,2) NOT NULL,
					grade_a_distribution_pct_post DECIMAL(5,2) NOT NULL,
					higher_degree_attempts INTEGER NOT NULL,
					higher_degree_admissions INTEGER NOT NULL,
					postmentor_exam_avg DECIMAL(5,2) NOT NULL,
					tier1_offers_share_pct DECIMAL(5,2) NOT NULL,
					avg_package_in_phase DECIMAL(10,2) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					CONSTRAINT mentor_cohort_business_key UNIQUE (cohort_id, phase)
				);

				CREATE INDEX IF NOT EXISTS idx_mentor_cohort_cohort_id ON mentor_cohort(cohort_id);
			`,
			DownSQL: `DROP TABLE IF EXISTS mentor_cohort;`,
		},
	}
}
