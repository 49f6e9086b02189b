package main

import (
	"blooddonation/internal/config"
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var promoteCommand = &cli.Command{
	Name:  "promote",
	Usage: "Create an account if needed and assign it a role",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Usage:    "Account email",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "role",
			Usage: "donor, volunteer or admin",
			Value: string(entity.RoleAdmin),
		},
	},
	Action: func(c *cli.Context) error {
		role, ok := entity.ParseRole(c.String("role"))
		if !ok {
			return fmt.Errorf("unknown role %q", c.String("role"))
		}

		cfg, err := config.ParseConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err := model.InitRepository(&cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer repo.Close()

		user, err := model.PromoteUser(context.Background(), repo, c.String("email"), role)
		if err != nil {
			return fmt.Errorf("failed to promote user: %w", err)
		}
		logrus.WithFields(logrus.Fields{"email": user.Email, "role": user.Role}).Info("role assigned")
		return nil
	},
}
