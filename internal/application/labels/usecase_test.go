package labels

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type fakeStock struct {
	rows    []entity.StockRow
	lastSID string
}

func (f *fakeStock) Lookup(_ context.Context, sid, _ string, codigos []string) ([]entity.StockRow, error) {
	f.lastSID = sid
	out := make([]entity.StockRow, 0, len(codigos))
	for _, c := range codigos {
		found := false
		for _, r := range f.rows {
			if r.Codigo == c {
				out = append(out, r)
				found = true
				break
			}
		}
		if !found {
			return nil, domain.NotFound("producto", c)
		}
	}
	return out, nil
}

type fakePDF struct{ got []ports.Label }

func (f *fakePDF) Labels(_ string, labels []ports.Label) ([]byte, error) {
	f.got = labels
	return []byte("%PDF"), nil
}

func newUC() (*UseCase, *fakeStock, *fakePDF) {
	st := &fakeStock{rows: []entity.StockRow{
		{Codigo: "A1", Nombre: "iPhone Glass", Cantidad: 3, PrecioLocal: decimal.NewFromInt(5000)},
		{Codigo: "B2", Nombre: "Cargador", Cantidad: 0, PrecioLocal: decimal.NewFromInt(3200)},
	}}
	p := &fakePDF{}
	return NewUseCase(st, p, "sid-default", "Stock", "Mi Tienda", nil), st, p
}

func TestGenerate_CopiasEnOrden(t *testing.T) {
	uc, st, p := newUC()
	doc, err := uc.Generate(context.Background(), dto.LabelsRequest{Codigos: []string{"B2", " A1 "}, Copias: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), doc)
	assert.Equal(t, "sid-default", st.lastSID)

	require.Len(t, p.got, 4)
	assert.Equal(t, "B2", p.got[0].Codigo)
	assert.Equal(t, "B2", p.got[1].Codigo)
	assert.Equal(t, "A1", p.got[2].Codigo)
	assert.True(t, p.got[2].Precio.Equal(decimal.NewFromInt(5000)))
}

func TestGenerate_CodigoInexistente(t *testing.T) {
	uc, _, _ := newUC()
	_, err := uc.Generate(context.Background(), dto.LabelsRequest{Codigos: []string{"ZZ"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_Validaciones(t *testing.T) {
	uc, _, _ := newUC()
	ctx := context.Background()

	_, err := uc.Generate(ctx, dto.LabelsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, dto.LabelsRequest{Codigos: []string{"A1", " "}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, dto.LabelsRequest{Codigos: []string{"A1"}, Copias: maxLabels + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := NewUseCase(&fakeStock{}, &fakePDF{}, "", "", "", nil)
	_, err = empty.Generate(ctx, dto.LabelsRequest{Codigos: []string{"A1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
