// Package store はユーザー・ロールの資格情報ストアを提供します。
package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role はユーザーに割り当てられる名前付きカテゴリです。
// 名前の一意性は強制しません（既存挙動の踏襲）。
type Role struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `json:"name"`
}

// User は認証対象のユーザーレコードです。
// Email の一意性はストレージ制約ではなく、サインアップ処理の事前チェックで担保します。
type User struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Email        string  `gorm:"index" json:"email"`
	PasswordHash string  `json:"-"`
	RoleID       *string `gorm:"size:36" json:"roleId,omitempty"`
	Role         *Role   `json:"role,omitempty"`
}

// BeforeCreate はドキュメントDB風の文字列IDを採番します。
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate はドキュメントDB風の文字列IDを採番します。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
