// Package catalog contiene las reglas que deciden si una mutación del panel está permitida.
// Los verificadores solo leen: nunca modifican el store.
package catalog

// Verdict resultado de una verificación. Reason nil significa permitido; si no, Reason es
// el error tipado de dominio que explica el rechazo.
type Verdict struct {
	Reason error
}

// Allow veredicto favorable.
func Allow() Verdict { return Verdict{} }

// Reject veredicto de rechazo con su motivo tipado.
func Reject(reason error) Verdict { return Verdict{Reason: reason} }

// Allowed informa si la mutación puede ejecutarse.
func (v Verdict) Allowed() bool { return v.Reason == nil }

// Err devuelve el motivo del rechazo (nil si está permitido).
func (v Verdict) Err() error { return v.Reason }
