package cmd

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/mtxtkit/mtxt/constants"
	"github.com/mtxtkit/mtxt/midi"
	"github.com/mtxtkit/mtxt/model"
	"github.com/mtxtkit/mtxt/parser"
	"github.com/mtxtkit/mtxt/writer"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the conversion API over HTTP",
	Long:  `Serves the conversion API over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

// HandleConvertToMidi takes raw MTXT text and responds with the
// encoded MIDI bytes. Parse problems are the client's fault (400).
func HandleConvertToMidi(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := parser.Parse(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := midi.Encode(doc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("X-Request-Id", uuid.New().String())
	w.Write(data)
}

// HandleConvertToMtxt takes raw MIDI bytes and responds with the
// canonical MTXT text plus a small summary.
func HandleConvertToMtxt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := midi.Decode(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	dur, _ := doc.Duration()
	res := model.ConvertMtxtResponse{
		RequestId: uuid.New().String(),
		Version:   doc.Version,
		Duration:  dur.Float64(),
		Records:   len(doc.Records),
		Mtxt:      writer.Serialize(doc),
	}
	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert/midi", HandleConvertToMidi).Methods("POST")
	router.HandleFunc("/convert/mtxt", HandleConvertToMtxt).Methods("POST")

	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(constants.GetBindAddr(), handler))
}
