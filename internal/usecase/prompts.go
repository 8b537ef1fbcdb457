package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

const analysisSystemPrompt = `Você é um especialista em vendas do setor de LIMPEZA PROFISSIONAL e HIGIENIZAÇÃO.

Você conhece profundamente:
- Produtos de limpeza industrial e doméstica
- Equipamentos de higienização (aspiradores, lavadoras, polidoras)
- Produtos químicos (desengordurantes, sanitizantes, desinfetantes)
- Produtos sustentáveis e eco-friendly
- EPIs para profissionais de limpeza
- Tendências do mercado de limpeza

Analise o lead e forneça estratégias de vendas específicas para o setor de limpeza. Use emojis para destacar pontos importantes. Seja prático e objetivo.`

const chatSystemPrompt = `Você é um vendedor consultivo especialista no setor de LIMPEZA PROFISSIONAL.

Você conhece todos os produtos de limpeza: detergentes, desinfetantes, sanitizantes, equipamentos, EPIs, produtos eco-friendly, etc.

Regras:
- Responda de forma natural e amigável em português brasileiro
- Máximo 3 frases por resposta
- Foque em entender as necessidades e oferecer soluções
- Use técnicas de vendas consultivas
- Mencione benefícios específicos dos produtos de limpeza
- Conduza para o fechamento quando apropriado`

const suggestSystemPrompt = `Você é um vendedor consultivo especialista no setor de LIMPEZA. Sugira uma resposta profissional para continuar a conversa de vendas.`

// transcriptWindow is how many of the latest chat messages go into a chat prompt.
const transcriptWindow = 20

func analysisPrompt(l entity.Lead) string {
	return fmt.Sprintf(`Analise este lead interessado em produtos de limpeza:

Nome: %s
Score: %d/100
Status: %s
Interesse: %s
Histórico: %s
Último contato: %s

Forneça:
1. 📊 Análise do perfil do cliente e seu potencial de compra
2. 🧹 Produtos de limpeza recomendados baseados no interesse
3. 💡 Script de vendas personalizado para o setor de limpeza
4. 🎯 Gatilhos mentais específicos (higiene, economia, sustentabilidade)
5. ⚠️ Objeções comuns no setor e como contorná-las
6. 📈 Estimativa de chance de conversão

Inclua sugestões de produtos relacionados e upselling.`,
		l.Name, l.Score, l.Status, l.Interest, l.History, l.LastContact)
}

func chatPrompt(l entity.Lead, message string, transcript []entity.ChatMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Contexto do Lead:
- Nome: %s
- Interesse: %s
- Score: %d/100
- Status: %s
`, l.Name, l.Interest, l.Score, l.Status)

	if len(transcript) > 0 {
		if len(transcript) > transcriptWindow {
			transcript = transcript[len(transcript)-transcriptWindow:]
		}
		b.WriteString("\nConversa até agora:\n")
		for _, m := range transcript {
			who := "Vendedor"
			if m.From == entity.SenderLead {
				who = "Lead"
			}
			fmt.Fprintf(&b, "[%s] %s: %s\n", m.Time, who, m.Text)
		}
	}

	fmt.Fprintf(&b, `
Última mensagem do lead: "%s"

Responda de forma natural, persuasiva e personalizada para o setor de limpeza.`, message)
	return b.String()
}

func suggestPrompt(l entity.Lead, lastMessage string) string {
	return fmt.Sprintf(`Lead: %s
Interesse: %s
Última mensagem: "%s"

Sugira uma resposta curta (máximo 2 frases) para avançar a negociação.`, l.Name, l.Interest, lastMessage)
}

func extractionPrompt(results []entity.SearchResult) (string, error) {
	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("erro ao serializar resultados de busca: %w", err)
	}

	return fmt.Sprintf(`Você é um assistente especializado em prospecção de leads para vendas de produtos de limpeza.

Analise os seguintes resultados de busca e extraia informações de potenciais clientes (lojas, distribuidoras, empresas de limpeza):

%s

Para cada potencial lead encontrado, extraia:
1. Nome da empresa/loja
2. Telefone (se disponível)
3. Endereço/Cidade (se disponível)
4. Website (se disponível)
5. Tipo de negócio (loja, distribuidora, empresa de serviços)
6. Score de potencial (1-100) baseado em:
   - Relevância para produtos de limpeza
   - Porte aparente do negócio
   - Informações de contato disponíveis

Retorne APENAS um JSON válido no seguinte formato (sem explicações):
{
  "leads": [
    {
      "name": "Nome da Empresa",
      "phone": "telefone ou null",
      "address": "endereço ou null",
      "website": "url ou null",
      "businessType": "tipo do negócio",
      "score": 75,
      "notes": "observações relevantes"
    }
  ]
}`, raw), nil
}
