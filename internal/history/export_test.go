package history

// BumpSchemaVersion rewrites the stored schema version so tests can simulate
// a database created by a different release.
func BumpSchemaVersion(s *Store) error {
	_, err := s.db.Exec("UPDATE schema_version SET version = version + 1")
	return err
}
