package inventory

import (
	"sort"
	"sync"
)

// KeyedLocker serializa las escrituras por clave de fila dentro del proceso.
// Las claves sin usuarios se liberan para que el mapa no crezca sin límite.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLocker crea un locker vacío.
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*keyLock)}
}

// Lock toma todas las claves (ordenadas y sin duplicados, para evitar deadlocks entre lotes)
// y devuelve la función que las libera.
func (k *KeyedLocker) Lock(keys ...string) (unlock func()) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, key)
	}
	sort.Strings(uniq)

	held := make([]*keyLock, 0, len(uniq))
	for _, key := range uniq {
		k.mu.Lock()
		l, ok := k.locks[key]
		if !ok {
			l = &keyLock{}
			k.locks[key] = l
		}
		l.refs++
		k.mu.Unlock()

		l.mu.Lock()
		held = append(held, l)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				k.mu.Lock()
				held[i].refs--
				if held[i].refs == 0 {
					delete(k.locks, uniq[i])
				}
				k.mu.Unlock()
			}
		})
	}
}

// size cantidad de claves vivas (tests).
func (k *KeyedLocker) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

// RowKey identidad de una fila de stock para el locker.
func RowKey(spreadsheetID, hoja, codigo string) string {
	return spreadsheetID + "|" + hoja + "|" + codigo
}

// SheetKey clave de altas de una hoja: quien agrega filas al final la toma, porque la
// posición de la fila nueva depende del conteo leído. Nunca coincide con un RowKey
// porque los códigos vacíos se rechazan.
func SheetKey(spreadsheetID, hoja string) string {
	return RowKey(spreadsheetID, hoja, "")
}
