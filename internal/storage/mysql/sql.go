package mysql

// SchemaSQL creates the audit table. Applied by ops tooling in production
// and by the integration test against a throwaway container.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS submission_log (
  id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  session_id  VARCHAR(64)  NOT NULL,
  homestay_id VARCHAR(64)  NULL,
  mode        VARCHAR(16)  NOT NULL,
  success     TINYINT(1)   NOT NULL,
  message     TEXT         NULL,
  created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_session (session_id),
  KEY idx_created (created_at)
)
`

const insertSubmissionSQL = `
INSERT INTO submission_log (session_id, homestay_id, mode, success, message, created_at)
VALUES (?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
`

const recentSubmissionsSQL = `
SELECT session_id, homestay_id, mode, success, message, created_at
FROM submission_log
ORDER BY created_at DESC, id DESC
LIMIT ?
`
