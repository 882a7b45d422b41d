// Package couriers provides the shared infrastructure for courier provider
// adapters: an HTTP client that maps transport failures into the provider
// error taxonomy, and a credential cache with single-flight refresh.
//
// Each provider lives in its own subpackage and satisfies ports.Provider.
// Provider-specific payload mapping stays in the adapter; retry, timeout
// and credential logic live once in the orchestration layer and here.
package couriers
