package mysql

const selectIPWhitelistSQL = `
SELECT ip_pattern
FROM user_ip_whitelist
WHERE user_id = ?
ORDER BY id
`

const hasSupplierPermissionSQL = `
SELECT EXISTS(
  SELECT 1 FROM user_supplier_permissions
  WHERE user_id = ? AND supplier_code = ?
)
`

const insertIPPatternSQL = `
INSERT INTO user_ip_whitelist (user_id, ip_pattern)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE ip_pattern = VALUES(ip_pattern)
`

const grantSupplierSQL = `
INSERT INTO user_supplier_permissions (user_id, supplier_code)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE supplier_code = VALUES(supplier_code)
`

const revokeSupplierSQL = `
DELETE FROM user_supplier_permissions
WHERE user_id = ? AND supplier_code = ?
`

const insertActivitySQL = `
INSERT INTO user_activity_log
  (id, activity_type, user_id, details, ip, user_agent, path, security_level, success, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const recentActivitySQL = `
SELECT id, activity_type, user_id, details, ip, user_agent, path, security_level, success, created_at
FROM user_activity_log
WHERE user_id = ?
ORDER BY created_at DESC
LIMIT ?
`
