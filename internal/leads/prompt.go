package leads

import (
	"fmt"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

// promptTemplate instructs the backend to return nothing but a four-column
// markdown pipe table. The example rows anchor the expected shape; the
// wording forbids fabricated contacts and mandates the search tool.
const promptTemplate = `Atue como um especialista em prospecção de leads (Lead Generation Specialist).

Tarefa: Encontre %d contatos comerciais REAIS e públicos para o nicho "%s" na localização: "%s".

Regras Críticas:
1. Use a ferramenta Google Search para encontrar dados reais. Não invente números.
2. Priorize empresas que tenham telefone listado publicamente.
3. Formate a saída ESTRITAMENTE como uma Tabela Markdown.
4. As colunas da tabela devem ser: "Nome", "Telefone", "Endereço/Região", "Website" (se houver, senão coloque N/A).
5. Não adicione texto introdutório ou conclusivo antes ou depois da tabela. Apenas a tabela.
6. Se encontrar menos que %d, liste todos que encontrar.

Exemplo de formato de saída esperado:
| Nome | Telefone | Endereço/Região | Website |
| Empresa X | (11) 9999-9999 | Rua Tal, SP | www.exemplo.com |`

// BuildPrompt composes the natural-language instruction for one search.
// Pure function of its input; the caller is responsible for validating and
// normalizing the criteria first.
func BuildPrompt(c model.SearchCriteria) string {
	return fmt.Sprintf(promptTemplate, c.Quantity, c.Niche, locationDescriptor(c), c.Quantity)
}

// locationDescriptor embeds the area code parenthetically when present.
func locationDescriptor(c model.SearchCriteria) string {
	if c.AreaCode != "" {
		return fmt.Sprintf("%s (DDD/Área %s)", c.Country, c.AreaCode)
	}
	return c.Country
}
