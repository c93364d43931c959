package occupancy

// ConnectionError means the database could not be reached. The message is
// what the endpoint reports to the caller.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "Conexión fallida: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError means the latest-state query failed after connecting.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return "Consulta fallida: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }
