package domain

import (
	"time"
)

// Channel identifica a plataforma de anúncios de origem de um registro
type Channel string

const (
	ChannelFacebook Channel = "Facebook"
	ChannelGoogle   Channel = "Google"
	ChannelTikTok   Channel = "TikTok"
)

// Channels retorna todos os canais suportados, na ordem de carga
func Channels() []Channel {
	return []Channel{ChannelFacebook, ChannelGoogle, ChannelTikTok}
}

// ChannelRecord representa uma linha de campanha (campanha-dia-região) de um
// dos arquivos de canal. O campo Channel é atribuído no momento da mesclagem.
type ChannelRecord struct {
	Date              time.Time `json:"date"`
	Tactic            string    `json:"tactic"`
	State             string    `json:"state"`
	Campaign          string    `json:"campaign"`
	Impressions       int64     `json:"impressions"`
	Clicks            int64     `json:"clicks"`
	Spend             float64   `json:"spend"`
	AttributedRevenue float64   `json:"attributed_revenue"`
	Channel           Channel   `json:"channel"`
}

// RowError descreve uma linha rejeitada durante a carga de um arquivo.
// Linhas rejeitadas não abortam a carga: o restante do arquivo é aproveitado.
type RowError struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Dataset é o resultado completo de uma carga: tabela unificada de canais,
// série de negócio e a lista de linhas rejeitadas (sucesso parcial).
type Dataset struct {
	Channels    []*ChannelRecord  `json:"channels"`
	Business    []*BusinessRecord `json:"business"`
	RowErrors   []RowError        `json:"row_errors,omitempty"`
	Fingerprint string            `json:"-"`
}
