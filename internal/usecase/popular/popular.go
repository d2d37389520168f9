package popular

import (
	"context"
	"fmt"
	"strings"

	"github.com/ghaniswara/people-swipe/internal/entity"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	"github.com/ghaniswara/people-swipe/pkg/mail"
)

const DefaultThreshold = 50

// Report describes one run of the popular people notification.
type Report struct {
	People []entity.PopularPerson
	Sent   bool
}

type IPopularUseCase interface {
	Notify(ctx context.Context) (Report, error)
}

type popularUseCase struct {
	peopleRepo peopleRepo.IPeopleRepo
	mailer     mail.Sender
	adminEmail string
	threshold  int
}

func NewPopularUseCase(peopleRepo peopleRepo.IPeopleRepo, mailer mail.Sender, adminEmail string, threshold int) IPopularUseCase {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &popularUseCase{
		peopleRepo: peopleRepo,
		mailer:     mailer,
		adminEmail: adminEmail,
		threshold:  threshold,
	}
}

// Notify mails the administrator a summary of everyone at or above the like
// threshold. Nothing is sent when nobody qualifies.
func (p *popularUseCase) Notify(ctx context.Context) (Report, error) {
	people, err := p.peopleRepo.PopularPeople(ctx, p.threshold)

	if err != nil {
		return Report{}, err
	}

	if len(people) == 0 {
		return Report{People: people}, nil
	}

	if p.adminEmail == "" {
		return Report{People: people}, fmt.Errorf("admin email is not configured: %w", entity.ErrInvalidArgument)
	}

	err = p.mailer.Send(ctx, mail.Message{
		To:      []string{p.adminEmail},
		Subject: fmt.Sprintf("Popular People (>=%d likes)", p.threshold),
		Body:    FormatBody(people),
	})

	if err != nil {
		return Report{People: people}, err
	}

	return Report{People: people, Sent: true}, nil
}

func FormatBody(people []entity.PopularPerson) string {
	lines := make([]string, 0, len(people))
	for _, person := range people {
		lines = append(lines, fmt.Sprintf("%s (ID %d) - %d likes", person.Name, person.ID, person.LikesCount))
	}

	return "Popular people:\n\n" + strings.Join(lines, "\n")
}
