package pattern

import "github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"

// CatalogRevision identifies the built-in catalog version. Bump whenever a
// definition below changes.
const CatalogRevision = 3

// BuiltinLibrary returns the catalog of recognized BMW sales intents over
// the bmw_sales table and the analytics.kpi_* views.
func BuiltinLibrary() *Library {
	return NewLibrary(CatalogRevision, builtinDefinitions)
}

var builtinDefinitions = []Definition{
	{
		ID: "dashboard",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{{"dashboard", "resumo", "painel", "visao geral", "indicadores"}},
				Optional: []string{"mostre", "exiba", "executivo", "kpis", "principais"},
			},
			domain.LangEnglish: {
				Required: [][]string{{"dashboard", "overview", "kpis"}},
				Optional: []string{"show", "executive", "summary"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_executive_dashboard",
		Description: "Executive dashboard with headline KPIs",
	},
	{
		ID: "top_regions",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"top", "melhores", "principais", "ranking", "classificacao"},
					{"regioes", "regiao"},
				},
				Optional: []string{"quais", "mostre", "vendas", "faturamento"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"top", "best", "ranking"},
					{"regions", "region"},
				},
				Optional: []string{"which", "show", "sales", "revenue"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_top_5_regions",
		Description: "Top 5 regions by revenue",
	},
	{
		ID: "top_n_models",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"top", "melhores", "principais", "ranking", "classificacao", "mais vendido", "mais vendidos"},
					{"modelos", "modelo"},
				},
				Optional: []string{"quais", "mostre", "vendas", "faturamento"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"top", "best", "ranking", "best selling"},
					{"models", "model"},
				},
				Optional: []string{"which", "show", "sales", "revenue"},
			},
		},
		Slots: []Slot{
			{Name: "n", Type: SlotInt, Required: false, Default: "10"},
		},
		Template:    "SELECT * FROM analytics.kpi_top_10_models LIMIT {n}",
		Description: "Top N models by revenue",
	},
	{
		ID: "annual_sales",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"vendas", "receita", "faturamento"},
					{"anuais", "anual", "por ano", "ao ano"},
				},
				Optional: []string{"mostre", "exiba", "totais", "evolucao", "historico", "agregadas"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"sales", "revenue"},
					{"annual", "yearly", "by year", "per year"},
				},
				Optional: []string{"show", "total", "history"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_annual_sales",
		Description: "Sales aggregated by year",
	},
	{
		ID: "monthly_trends",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"tendencias", "tendencia", "sazonalidade", "evolucao"},
					{"mensais", "mensal", "por mes", "meses"},
				},
				Optional: []string{"mostre", "vendas"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"trends", "trend", "seasonality"},
					{"monthly", "by month", "per month"},
				},
				Optional: []string{"show", "sales"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_temporal_trends",
		Description: "Monthly sales trends",
	},
	{
		ID: "regional_performance",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"performance", "desempenho", "analise", "comparativo", "vendas"},
					{"regiao", "regioes"},
				},
				Optional: []string{"qual", "mostre", "por", "detalhada"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"performance", "analysis", "sales"},
					{"region", "regions", "regional"},
				},
				Optional: []string{"show", "by", "detailed"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_regional_performance",
		Description: "Detailed performance by region",
	},
	{
		ID: "model_performance",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"performance", "desempenho", "analise", "comparativo"},
					{"modelo", "modelos"},
				},
				Optional: []string{"qual", "mostre", "por", "vendas"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"performance", "analysis"},
					{"model", "models"},
				},
				Optional: []string{"show", "by", "sales"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_model_performance",
		Description: "Detailed performance by model",
	},
	{
		ID: "fuel_performance",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{{"combustivel", "combustiveis"}},
				Optional: []string{"performance", "desempenho", "vendas", "tipo", "por"},
			},
			domain.LangEnglish: {
				Required: [][]string{{"fuel"}},
				Optional: []string{"performance", "sales", "type", "by"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_fuel_type_performance",
		Description: "Performance by fuel type",
	},
	{
		ID: "transmission_performance",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{{"transmissao", "cambio"}},
				Optional: []string{"performance", "desempenho", "vendas", "por"},
			},
			domain.LangEnglish: {
				Required: [][]string{{"transmission"}},
				Optional: []string{"performance", "sales", "by"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_transmission_performance",
		Description: "Performance by transmission",
	},
	{
		ID: "annual_growth",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"crescimento", "taxa", "aumento"},
					{"anual", "por ano", "anuais"},
				},
				Optional: []string{"mostre", "vendas", "percentual"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"growth", "rate", "increase"},
					{"annual", "yearly", "by year"},
				},
				Optional: []string{"show", "sales", "percentage"},
			},
		},
		Template:    "SELECT * FROM analytics.kpi_annual_growth",
		Description: "Year-over-year sales growth",
	},
	{
		ID: "year_analysis",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"ano", "anos"},
					{"melhor", "maior", "mais", "qual", "quais"},
				},
				Optional: []string{"vendas", "modelos", "tem"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"year", "years"},
					{"best", "most", "which"},
				},
				Optional: []string{"sales", "models"},
			},
		},
		Template: "SELECT year, COUNT(DISTINCT model) AS total_models, SUM(sales_volume) AS total_sales " +
			"FROM bmw_sales GROUP BY year ORDER BY total_sales DESC",
		Description: "Sales and model count ranked by year",
	},
	{
		ID: "region_sales",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"vendas", "faturamento", "receita", "mercado"},
				},
				Optional: []string{"mostre", "qual", "total"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"sales", "revenue", "market"},
				},
				Optional: []string{"show", "total"},
			},
		},
		Slots: []Slot{
			{Name: "region", Type: SlotRegion, Required: true},
		},
		Template: "SELECT year, SUM(sales_volume) AS total_units_sold, SUM(price_usd * sales_volume) AS total_revenue " +
			"FROM bmw_sales WHERE region = '{region}' GROUP BY year ORDER BY year",
		Description: "Yearly sales for a single region",
	},
	{
		ID: "model_sales",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"vendas", "faturamento", "receita"},
				},
				Optional: []string{"mostre", "qual", "total"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"sales", "revenue"},
				},
				Optional: []string{"show", "total"},
			},
		},
		Slots: []Slot{
			{Name: "model", Type: SlotModel, Required: true},
		},
		Template: "SELECT year, SUM(sales_volume) AS total_units_sold, SUM(price_usd * sales_volume) AS total_revenue " +
			"FROM bmw_sales WHERE model = '{model}' GROUP BY year ORDER BY year",
		Description: "Yearly sales for a single model",
	},
	{
		ID: "count_records",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"conte", "quantos", "quantas", "numero", "total"},
					{"registros", "linhas"},
				},
				Optional: []string{"temos"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"count", "how many", "number"},
					{"records", "rows"},
				},
				Optional: []string{"total"},
			},
		},
		Template:    "SELECT COUNT(*) AS total_records FROM bmw_sales",
		Description: "Total record count",
	},
	{
		ID: "count_regions",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"conte", "quantos", "quantas", "numero"},
					{"regioes", "regiao"},
				},
				Optional: []string{"temos"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"count", "how many", "number"},
					{"regions", "region"},
				},
				Optional: []string{"total"},
			},
		},
		Template:    "SELECT COUNT(DISTINCT region) AS total_regions FROM bmw_sales",
		Description: "Distinct region count",
	},
	{
		ID: "count_models",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"conte", "quantos", "quantas", "numero"},
					{"modelos", "modelo"},
				},
				Optional: []string{"temos"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"count", "how many", "number"},
					{"models", "model"},
				},
				Optional: []string{"total"},
			},
		},
		Template:    "SELECT COUNT(DISTINCT model) AS total_models FROM bmw_sales",
		Description: "Distinct model count",
	},
	{
		ID: "average_price",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"media", "medio"},
					{"preco", "precos", "valor", "custo"},
				},
				Optional: []string{"qual"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"average", "avg", "mean"},
					{"price", "prices", "cost"},
				},
				Optional: []string{"what"},
			},
		},
		Template:    "SELECT AVG(price_usd) AS average_price FROM bmw_sales",
		Description: "Average unit price",
	},
	{
		ID: "max_price",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"maximo", "maior"},
					{"preco", "precos", "valor"},
				},
				Optional: []string{"qual"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"maximum", "max", "highest"},
					{"price", "prices"},
				},
				Optional: []string{"what"},
			},
		},
		Template:    "SELECT MAX(price_usd) AS max_price FROM bmw_sales",
		Description: "Highest unit price",
	},
	{
		ID: "sum_sales",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"soma", "total"},
					{"vendas", "unidades"},
				},
				Optional: []string{"qual", "geral"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"sum", "total"},
					{"sales", "units"},
				},
				Optional: []string{"what", "overall"},
			},
		},
		Template:    "SELECT SUM(sales_volume) AS total_sales FROM bmw_sales",
		Description: "Total units sold",
	},
	{
		ID: "sum_revenue",
		Triggers: map[domain.Language]TriggerSet{
			domain.LangPortuguese: {
				Required: [][]string{
					{"soma", "total"},
					{"receita", "faturamento"},
				},
				Optional: []string{"qual", "geral"},
			},
			domain.LangEnglish: {
				Required: [][]string{
					{"sum", "total"},
					{"revenue"},
				},
				Optional: []string{"what", "overall"},
			},
		},
		Template:    "SELECT SUM(price_usd * sales_volume) AS total_revenue FROM bmw_sales",
		Description: "Total revenue",
	},
}
