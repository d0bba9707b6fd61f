package models

import "time"

// TenantSetting é configuração chave/valor por tenant (percentual de sinal,
// janela do hold, buffer entre atendimentos...). Valores são strings; a
// tipagem fica no pacote settings.
type TenantSetting struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;uniqueIndex:idx_settings_tenant_key" json:"tenant_id"`
	Key      string `gorm:"size:100;not null;uniqueIndex:idx_settings_tenant_key" json:"key"`
	Value    string `gorm:"size:255" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
