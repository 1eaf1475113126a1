// Package numbering formatea los números secuenciales de comprobantes.
package numbering

import "fmt"

// Width ancho mínimo de un número de venta.
const Width = 5

// First primer número emitido por un contador nuevo.
const First int64 = 1

// Format rellena n con ceros a la izquierda hasta Width dígitos.
// Valores con más dígitos se muestran completos, sin truncar.
func Format(n int64) string {
	return fmt.Sprintf("%0*d", Width, n)
}
