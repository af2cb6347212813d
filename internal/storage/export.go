package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

type ExportData struct {
	ID          string             `json:"id"`
	Formulation string             `json:"formulation"`
	Integrator  string             `json:"integrator"`
	Controller  string             `json:"controller"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Controls    [][]float64        `json:"controls"`
	Metrics     map[string]float64 `json:"metrics"`
}

func ExportJSONTo(w io.Writer, id, formulation, integrator, controller string, dt float64, steps int, result *dynamo.Result) error {
	data := ExportData{
		ID:          id,
		Formulation: formulation,
		Integrator:  integrator,
		Controller:  controller,
		Dt:          dt,
		Steps:       steps,
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Controls:    make([][]float64, len(result.Controls)),
		Metrics:     result.Metrics,
	}

	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONStdout(id, formulation, integrator, controller string, dt float64, steps int, result *dynamo.Result) error {
	return ExportJSONTo(os.Stdout, id, formulation, integrator, controller, dt, steps, result)
}
