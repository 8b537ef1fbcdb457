package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/config"
	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/kommo"
	"github.com/xavierca1/vital-sales-pro/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	client := kommo.NewClient(cfg.KommoToken, cfg.KommoBaseURL, cfg.KommoStatusID, logger)
	if !client.Configured() {
		log.Fatal("❌ KOMMO_API_TOKEN deve estar configurado no .env")
	}

	input := kommo.CreateLeadInput{
		Name:     "Joao Teste da Silva",
		Phone:    "+5561999767638",
		Interest: "Kit Limpeza Profissional",
		Status:   "hot",
		Source:   "manual",
		Score:    85,
		Notes:    "Lead de teste da integração",
	}

	fmt.Println("🔄 Criando lead no Kommo...")
	fmt.Printf("📋 Dados:\n")
	fmt.Printf("   Nome: %s\n", input.Name)
	fmt.Printf("   Telefone: %s\n", input.Phone)
	fmt.Printf("   Interesse: %s\n", input.Interest)
	fmt.Printf("   Status: %s (score %d)\n\n", input.Status, input.Score)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	leadID, err := client.CreateLead(ctx, input)
	if err != nil {
		log.Fatalf("Erro ao criar lead no Kommo: %v", err)
	}

	accountID := os.Getenv("KOMMO_ACCOUNT_ID")
	if accountID == "" {
		accountID = "vitalsales"
	}

	fmt.Printf("Lead criado com sucesso no Kommo! \n")
	fmt.Printf(" ID do Lead: #%d\n", leadID)
	fmt.Printf(" Link: https://%s.kommo.com/leads/detail/%d\n", accountID, leadID)
}
