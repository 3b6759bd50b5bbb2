package state

// FlowRecord is one `id=host:port` line of a manifest, verbatim.
type FlowRecord struct {
	ID           string
	EndpointSpec string
}
