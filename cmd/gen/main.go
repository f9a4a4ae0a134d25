package main

import (
	"lumera/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.PasswordResetOTPModel{},
		model.OrderModel{},
		model.CouponModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
