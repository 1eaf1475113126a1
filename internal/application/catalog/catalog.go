// Package catalog arma el catálogo público a partir de la hoja de stock.
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// StockReader lectura de filas de stock.
type StockReader interface {
	Rows(ctx context.Context, spreadsheetID, hoja string) ([]entity.StockRow, error)
}

// CacheKeys claves de caché que dependen del contenido de la hoja.
func CacheKeys(spreadsheetID, hoja string) []string {
	return []string{"catalogo:" + spreadsheetID + ":" + hoja}
}

// UseCase catálogo público de una hoja fija.
type UseCase struct {
	reader        StockReader
	cache         ports.Cache
	ttl           time.Duration
	spreadsheetID string
	hoja          string
	log           *logger.Logger
}

// NewUseCase construye el caso de uso. cache nil desactiva la caché.
func NewUseCase(reader StockReader, cache ports.Cache, ttl time.Duration, spreadsheetID, hoja string, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		reader:        reader,
		cache:         cache,
		ttl:           ttl,
		spreadsheetID: spreadsheetID,
		hoja:          hoja,
		log:           log.Named("catalog"),
	}
}

// List productos con stock, ordenados por categoría y nombre. Filtra por categoría exacta
// (sin distinguir mayúsculas ni acentos) y por texto libre sobre nombre o código.
func (uc *UseCase) List(ctx context.Context, q dto.CatalogQuery) ([]dto.CatalogItem, error) {
	items, err := uc.available(ctx)
	if err != nil {
		return nil, err
	}
	cat := Normalize(q.Categoria)
	text := Normalize(q.Q)
	out := make([]dto.CatalogItem, 0, len(items))
	for _, it := range items {
		if cat != "" && Normalize(it.Categoria) != cat {
			continue
		}
		if text != "" && !strings.Contains(Normalize(it.Nombre), text) && !strings.Contains(Normalize(it.Codigo), text) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Categories categorías distintas con al menos un producto disponible, en orden alfabético.
func (uc *UseCase) Categories(ctx context.Context) ([]string, error) {
	items, err := uc.available(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	cats := make([]string, 0)
	for _, it := range items {
		if it.Categoria == "" {
			continue
		}
		key := Normalize(it.Categoria)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cats = append(cats, it.Categoria)
	}
	sort.Slice(cats, func(i, j int) bool { return Normalize(cats[i]) < Normalize(cats[j]) })
	return cats, nil
}

// available lista completa de productos con stock, desde caché si está vigente.
func (uc *UseCase) available(ctx context.Context) ([]dto.CatalogItem, error) {
	key := CacheKeys(uc.spreadsheetID, uc.hoja)[0]
	if uc.cache != nil {
		var cached []dto.CatalogItem
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché de catálogo no disponible")
		} else if found {
			return cached, nil
		}
	}

	rows, err := uc.reader.Rows(ctx, uc.spreadsheetID, uc.hoja)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogItem, 0, len(rows))
	for _, r := range rows {
		if r.Cantidad <= 0 {
			continue
		}
		items = append(items, dto.CatalogItem{
			Codigo:           r.Codigo,
			Categoria:        r.Categoria,
			Nombre:           r.Nombre,
			Precio:           r.PrecioLocal,
			PrecioReferencia: r.PrecioReferencia,
			Disponible:       r.Cantidad,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := Normalize(items[i].Categoria), Normalize(items[j].Categoria)
		if ci != cj {
			return ci < cj
		}
		return Normalize(items[i].Nombre) < Normalize(items[j].Nombre)
	})

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, items, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar catálogo en caché")
		}
	}
	return items, nil
}

// Normalize pasa a minúsculas y quita tildes y diéresis ("Cañón Óptico" → "canon optico").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
