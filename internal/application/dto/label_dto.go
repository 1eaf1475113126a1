package dto

// LabelsRequest hoja de etiquetas para los códigos indicados.
type LabelsRequest struct {
	SpreadsheetID string   `json:"spreadsheet_id"`
	Hoja          string   `json:"hoja" validate:"omitempty,max=100"`
	Codigos       []string `json:"codigos" validate:"required,min=1,max=200,dive,required"`
	Copias        int      `json:"copias" validate:"omitempty,min=1,max=50"`
}
