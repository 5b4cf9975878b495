package csvsource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/datasource"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

const channelHeader = "date,tactic,state,campaign,impressions,clicks,spend,attributed_revenue\n"
const businessHeader = "date,orders,new_orders,new_customers,total_revenue,gross_profit,cogs\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

// setupDataDir cria o diretório de dados com os quatro arquivos
func setupDataDir(t *testing.T, facebook, google, tiktok, business string) config.Data {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "Facebook.csv", facebook)
	writeFile(t, dir, "Google.csv", google)
	writeFile(t, dir, "TikTok.csv", tiktok)
	writeFile(t, dir, "Business.csv", business)

	return config.Data{
		Dir:          dir,
		FacebookFile: "Facebook.csv",
		GoogleFile:   "Google.csv",
		TikTokFile:   "TikTok.csv",
		BusinessFile: "Business.csv",
	}
}

func minimalChannel(rows string) string {
	return channelHeader + rows
}

func TestLoadChannels(t *testing.T) {
	cfg := setupDataDir(t,
		minimalChannel("2024-01-01,Retargeting,NY,Retargeting - NY,2000,40,60.50,240.00\n"),
		minimalChannel("2024-01-01,Search,CA,Search - Brand,4000,120,120.00,480.00\n"),
		minimalChannel("2024-01-01,Spark,TX,Spark Ads,4000,140,80.00,240.00\n"),
		businessHeader+"2024-01-01,150,90,98,12750.00,5100.00,7650.00\n",
	)

	source := New(cfg)

	tables, rowErrors, err := source.LoadChannels()
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	assert.Len(t, tables, 3)

	facebook := tables[domain.ChannelFacebook]
	require.Len(t, facebook, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), facebook[0].Date)
	assert.Equal(t, "Retargeting - NY", facebook[0].Campaign)
	assert.Equal(t, int64(2000), facebook[0].Impressions)
	assert.InDelta(t, 60.50, facebook[0].Spend, 0.0001)
	// O canal é atribuído no merge, não na leitura
	assert.Equal(t, domain.Channel(""), facebook[0].Channel)
}

func TestLoadChannels_SucessoParcial(t *testing.T) {
	// Linha 3 tem spend não numérico: rejeitada sem abortar o arquivo
	facebook := minimalChannel(
		"2024-01-01,Retargeting,NY,Retargeting - NY,2000,40,60.50,240.00\n" +
			"2024-01-02,Retargeting,NY,Retargeting - NY,2100,42,N/A,250.00\n" +
			"2024-01-03,Retargeting,NY,Retargeting - NY,2200,44,61.00,260.00\n",
	)
	cfg := setupDataDir(t,
		facebook,
		minimalChannel(""),
		minimalChannel(""),
		businessHeader,
	)

	source := New(cfg)

	tables, rowErrors, err := source.LoadChannels()
	require.NoError(t, err)

	assert.Len(t, tables[domain.ChannelFacebook], 2)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 3, rowErrors[0].Line)
	assert.Equal(t, "spend", rowErrors[0].Column)
	assert.Contains(t, rowErrors[0].Reason, "N/A")
}

func TestLoadChannels_DataInvalida(t *testing.T) {
	cfg := setupDataDir(t,
		minimalChannel("01/15/2024,Retargeting,NY,R,100,10,10.00,40.00\n"),
		minimalChannel(""),
		minimalChannel(""),
		businessHeader,
	)

	source := New(cfg)

	tables, rowErrors, err := source.LoadChannels()
	require.NoError(t, err)
	assert.Empty(t, tables[domain.ChannelFacebook])
	require.Len(t, rowErrors, 1)
	assert.Equal(t, "date", rowErrors[0].Column)
}

func TestLoadChannels_SchemaError(t *testing.T) {
	// Google.csv sem a coluna spend
	cfg := setupDataDir(t,
		minimalChannel(""),
		"date,tactic,state,campaign,impressions,clicks,attributed_revenue\n",
		minimalChannel(""),
		businessHeader,
	)

	source := New(cfg)

	_, _, err := source.LoadChannels()
	require.Error(t, err)

	var schemaErr *datasource.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "spend", schemaErr.Column)
	assert.Contains(t, schemaErr.File, "Google.csv")
}

func TestLoadBusiness_ColunasComAlias(t *testing.T) {
	// Alguns exports usam "# of orders" e "COGS"
	business := "date,# of orders,# of new orders,new customers,total revenue,gross profit,COGS\n" +
		"2024-01-01,150,90,98,12750.00,5100.00,7650.00\n"

	cfg := setupDataDir(t,
		minimalChannel(""),
		minimalChannel(""),
		minimalChannel(""),
		business,
	)

	source := New(cfg)

	records, rowErrors, err := source.LoadBusiness()
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, records, 1)

	assert.Equal(t, int64(150), records[0].Orders)
	assert.Equal(t, int64(90), records[0].NewOrders)
	assert.Equal(t, int64(60), records[0].RepeatOrders())
	assert.InDelta(t, 7650.00, records[0].COGS, 0.0001)
}

func TestLoadBusiness_ContagemNaoInteira(t *testing.T) {
	business := businessHeader + "2024-01-01,150.5,90,98,12750.00,5100.00,7650.00\n"

	cfg := setupDataDir(t,
		minimalChannel(""),
		minimalChannel(""),
		minimalChannel(""),
		business,
	)

	source := New(cfg)

	records, rowErrors, err := source.LoadBusiness()
	require.NoError(t, err)
	assert.Empty(t, records)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, "orders", rowErrors[0].Column)
}

func TestFingerprint(t *testing.T) {
	cfg := setupDataDir(t,
		minimalChannel(""),
		minimalChannel(""),
		minimalChannel(""),
		businessHeader,
	)

	source := New(cfg)

	first, err := source.Fingerprint()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	// Sem alteração nos arquivos a assinatura é estável
	second, err := source.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Alterar um arquivo muda a assinatura
	writeFile(t, cfg.Dir, "Facebook.csv", minimalChannel("2024-01-01,T,NY,C,1,1,1.00,1.00\n"))

	changed, err := source.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestFingerprint_ArquivoAusente(t *testing.T) {
	cfg := setupDataDir(t,
		minimalChannel(""),
		minimalChannel(""),
		minimalChannel(""),
		businessHeader,
	)
	require.NoError(t, os.Remove(filepath.Join(cfg.Dir, "TikTok.csv")))

	source := New(cfg)

	_, err := source.Fingerprint()
	assert.Error(t, err)
}
