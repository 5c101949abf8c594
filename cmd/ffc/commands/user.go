package commands

import (
	"fmt"
	"strings"

	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/spf13/cobra"
)

// userFlags collects the attributes of the user a command acts for
type userFlags struct {
	key     string
	name    string
	email   string
	country string
	props   []string
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "user", "", "User key (required)")
	cmd.Flags().StringVar(&f.name, "name", "", "User display name")
	cmd.Flags().StringVar(&f.email, "email", "", "User email")
	cmd.Flags().StringVar(&f.country, "country", "", "User country")
	cmd.Flags().StringArrayVar(&f.props, "prop", nil, "Custom attribute as name=value (repeatable)")
}

func (f *userFlags) build() (model.User, error) {
	b := model.NewUserBuilder(f.key).
		UserName(f.name).
		Email(f.email).
		Country(f.country)
	for _, p := range f.props {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return model.User{}, fmt.Errorf("invalid --prop %q, expected name=value", p)
		}
		b.Custom(name, value)
	}
	return b.Build()
}
