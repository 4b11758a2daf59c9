package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
)

// apiEnvelope mirrors the uniform response shape of the reservation API.
type apiEnvelope struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data"`
	Error  *string         `json:"error"`
}

func main() {
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}
	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}

	client := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(15 * time.Second)

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal("bot init failed:", err)
	}
	log.Printf("staff bot started as %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID

		switch msg.Command() {
		case "start":
			bot.Send(tgbotapi.NewMessage(chatID,
				"Bot panitia Jumat Berkah.\n"+
					"/quota - kuota treatment & jam kedatangan\n"+
					"/recent - pendaftar terbaru\n"+
					"/export - unduh tabel reservasi (Excel)"))

		case "quota":
			text, err := fetchQuota(client)
			if err != nil {
				log.Printf("quota fetch failed: %v", err)
				bot.Send(tgbotapi.NewMessage(chatID, "Gagal mengambil data kuota."))
				continue
			}
			bot.Send(tgbotapi.NewMessage(chatID, text))

		case "recent":
			text, err := fetchRecent(client)
			if err != nil {
				log.Printf("registrant fetch failed: %v", err)
				bot.Send(tgbotapi.NewMessage(chatID, "Gagal mengambil daftar pendaftar."))
				continue
			}
			bot.Send(tgbotapi.NewMessage(chatID, text))

		case "export":
			data, err := fetchExport(client)
			if err != nil {
				log.Printf("export fetch failed: %v", err)
				bot.Send(tgbotapi.NewMessage(chatID, "Gagal membuat file export."))
				continue
			}
			doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
				Name:  "reservations.xlsx",
				Bytes: data,
			})
			bot.Send(doc)
		}
	}
}

func fetchEnvelope(client *resty.Client, action string) (json.RawMessage, error) {
	resp, err := client.R().
		SetQueryParam("action", action).
		Get("/api/reservations")
	if err != nil {
		return nil, err
	}
	var env apiEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}
	if env.Result != "success" {
		if env.Error != nil {
			return nil, fmt.Errorf("%s failed: %s", action, *env.Error)
		}
		return nil, fmt.Errorf("%s failed", action)
	}
	return env.Data, nil
}

func fetchQuota(client *resty.Client) (string, error) {
	data, err := fetchEnvelope(client, "getData")
	if err != nil {
		return "", err
	}
	var summary model.QuotaSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Kuota saat ini\n\nTreatment:\n")
	writeCounts(&b, summary.TreatmentCounts)
	b.WriteString("\nJam kedatangan:\n")
	writeCounts(&b, summary.SlotCounts)
	return b.String(), nil
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	if len(counts) == 0 {
		b.WriteString("  (belum ada pendaftar)\n")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %d\n", k, counts[k])
	}
}

func fetchRecent(client *resty.Client) (string, error) {
	data, err := fetchEnvelope(client, "getRegistrants")
	if err != nil {
		return "", err
	}
	var registrants []model.Reservation
	if err := json.Unmarshal(data, &registrants); err != nil {
		return "", err
	}
	if len(registrants) == 0 {
		return "Belum ada pendaftar.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pendaftar terbaru (%d):\n", len(registrants))
	for i, r := range registrants {
		fmt.Fprintf(&b, "%d. %s - %s @ %s (%s)\n",
			i+1, r.BookerName, r.TreatmentType, r.ArrivalSlot, r.ReservationID)
	}
	return b.String(), nil
}

func fetchExport(client *resty.Client) ([]byte, error) {
	resp, err := client.R().Get("/api/reservations/export")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("export returned status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
