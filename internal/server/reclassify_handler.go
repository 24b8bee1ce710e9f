package server

import (
	"bufio"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"ventus/travel-enrich/internal/dateutils"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"

	"github.com/gofiber/fiber/v2"
)

// reclassifyRequest is the wire shape clients post: the minimized candidate
// rows, with the home ZIP arriving as a query parameter.
type reclassifyRequest struct {
	Transactions []struct {
		ID       string `json:"id"`
		Date     string `json:"date"`
		Merchant string `json:"merchant"`
		Pillar   string `json:"pillar"`
		Zip      string `json:"zip"`
	} `json:"transactions"`
}

// handleReclassify validates the candidate payload, then answers with an SSE
// stream: a status event, one or more travel_updates batches, and a terminal
// done (or error) event. Validation failures reject with 400 before any
// stream is established.
func (s *Server) handleReclassify(c *fiber.Ctx) error {
	log := s.log.WithField("request_id", c.Locals("request_id"))

	homeZip := strings.TrimSpace(c.Query("home_zip"))
	if homeZip == "" {
		return fiber.NewError(fiber.StatusBadRequest, "home_zip query parameter is required")
	}

	var req reclassifyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if len(req.Transactions) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "candidate transaction array is empty")
	}

	candidates := make([]models.Transaction, 0, len(req.Transactions))
	for _, row := range req.Transactions {
		if strings.TrimSpace(row.ID) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "candidate row is missing id")
		}
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "candidate row "+row.ID+" has an invalid date")
		}
		candidates = append(candidates, models.Transaction{
			TransactionID: row.ID,
			MerchantName:  row.Merchant,
			Date:          date,
			Pillar:        row.Pillar,
			ZipCode:       row.Zip,
		})
	}

	log.WithField("candidates", len(candidates)).Info("Reclassification stream starting")

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	chunkSize := s.cfg.ChunkSize
	timeout := s.cfg.ClassifyTimeout
	cls := s.classifier

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		writeEvent(w, "status", statusBody("classifying "+strconv.Itoa(len(candidates))+" candidate transactions"))

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		annotations, err := cls.Classify(ctx, candidates, homeZip)
		if err != nil {
			log.WithError(err).Error("Classification failed")
			writeEvent(w, "error", statusBody("classification failed: "+err.Error()))
			return
		}

		for start := 0; start < len(annotations); start += chunkSize {
			end := start + chunkSize
			if end > len(annotations) {
				end = len(annotations)
			}
			batch, err := json.Marshal(annotations[start:end])
			if err != nil {
				log.WithError(err).Error("Failed to encode annotation batch")
				writeEvent(w, "error", statusBody("failed to encode annotations"))
				return
			}
			writeEvent(w, "travel_updates", batch)
		}

		writeEvent(w, "done", []byte("{}"))
		log.WithFields(
			logging.F("candidates", len(candidates)),
			logging.F("annotations", len(annotations)),
		).Info("Reclassification stream complete")
	})

	return nil
}

// writeEvent emits one SSE frame and flushes so the client sees it
// immediately.
func writeEvent(w *bufio.Writer, name string, data []byte) {
	_, _ = w.WriteString("event: " + name + "\n")
	_, _ = w.WriteString("data: " + string(data) + "\n\n")
	_ = w.Flush()
}

func statusBody(message string) []byte {
	body, _ := json.Marshal(map[string]string{"message": message})
	return body
}
