package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/foliolab/folio/internal/db"
	"github.com/foliolab/folio/internal/model"
)

const testOwnerID = "00000000-0000-0000-0000-000000000001"

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	now := time.Now()
	_, err = database.Exec(
		`INSERT INTO users (id, user_name, password_hash, name, title, about_me, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		testOwnerID, "owner", "x", "Owner", "", "", now, now,
	)
	require.NoError(t, err)

	return database
}

func newSkill(name string) *model.Skill {
	now := time.Now()
	return &model.Skill{
		ID:        uuid.New().String(),
		UserID:    testOwnerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newContact(label, value string) *model.Contact {
	now := time.Now()
	return &model.Contact{
		ID:        uuid.New().String(),
		UserID:    testOwnerID,
		Label:     label,
		Name:      label,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ordersByID reads the current order values of a table scoped to the test owner.
func ordersByID(t *testing.T, database *sqlx.DB, table string) map[string]int {
	t.Helper()

	rows, err := database.Query(`SELECT id, "order" FROM ` + table + ` WHERE user_id = '` + testOwnerID + `'`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	orders := make(map[string]int)
	for rows.Next() {
		var id string
		var order int
		require.NoError(t, rows.Scan(&id, &order))
		orders[id] = order
	}
	require.NoError(t, rows.Err())

	return orders
}

// requireDense asserts the order values form exactly {0..N-1}.
func requireDense(t *testing.T, orders map[string]int) {
	t.Helper()

	seen := make(map[int]bool, len(orders))
	for id, order := range orders {
		require.GreaterOrEqual(t, order, 0, "id %s has negative order", id)
		require.Less(t, order, len(orders), "id %s has order beyond count", id)
		require.False(t, seen[order], "duplicate order %d", order)
		seen[order] = true
	}
}

func TestSkillInsertAtHead(t *testing.T) {
	database := newTestDB(t)
	repo := NewSkillRepository(database)

	first := newSkill("Go")
	second := newSkill("SQL")
	third := newSkill("Docker")
	fourth := newSkill("Kubernetes")

	for _, s := range []*model.Skill{first, second, third, fourth} {
		require.NoError(t, repo.Create(s))
	}

	orders := ordersByID(t, database, skillsTable)
	require.Equal(t, 0, orders[fourth.ID])
	require.Equal(t, 1, orders[third.ID])
	require.Equal(t, 2, orders[second.ID])
	require.Equal(t, 3, orders[first.ID])
	requireDense(t, orders)
}

func TestSkillDeleteAndCompact(t *testing.T) {
	database := newTestDB(t)
	repo := NewSkillRepository(database)

	skills := []*model.Skill{newSkill("a"), newSkill("b"), newSkill("c"), newSkill("d")}
	for _, s := range skills {
		require.NoError(t, repo.Create(s))
	}
	// Insert-at-head means creation order reverses: d=0, c=1, b=2, a=3.

	// Delete the row at order 1.
	require.NoError(t, repo.Delete(skills[2].ID))

	orders := ordersByID(t, database, skillsTable)
	require.Len(t, orders, 3)
	require.Equal(t, 0, orders[skills[3].ID])
	require.Equal(t, 1, orders[skills[1].ID])
	require.Equal(t, 2, orders[skills[0].ID])
	requireDense(t, orders)
}

func TestSkillDeleteNotFound(t *testing.T) {
	database := newTestDB(t)
	repo := NewSkillRepository(database)

	err := repo.Delete(uuid.New().String())
	require.ErrorIs(t, err, ErrSkillNotFound)
}

func TestSkillReorderRoundTrip(t *testing.T) {
	database := newTestDB(t)
	repo := NewSkillRepository(database)

	skills := []*model.Skill{newSkill("a"), newSkill("b"), newSkill("c"), newSkill("d")}
	for _, s := range skills {
		require.NoError(t, repo.Create(s))
	}

	permutation := []string{skills[1].ID, skills[3].ID, skills[0].ID, skills[2].ID}
	require.NoError(t, repo.Reorder(testOwnerID, permutation))

	orders := ordersByID(t, database, skillsTable)
	for index, id := range permutation {
		require.Equal(t, index, orders[id])
	}
	requireDense(t, orders)

	// Reading back yields the permutation.
	all, err := repo.All(testOwnerID)
	require.NoError(t, err)
	got := make([]string, 0, len(all))
	for _, s := range all {
		got = append(got, s.ID)
	}
	require.Equal(t, permutation, got)
}

func TestSkillReorderRejectsMismatchedIDs(t *testing.T) {
	database := newTestDB(t)
	repo := NewSkillRepository(database)

	skills := []*model.Skill{newSkill("a"), newSkill("b"), newSkill("c")}
	for _, s := range skills {
		require.NoError(t, repo.Create(s))
	}
	before := ordersByID(t, database, skillsTable)

	cases := map[string][]string{
		"missing id":   {skills[0].ID, skills[1].ID},
		"foreign id":   {skills[0].ID, skills[1].ID, uuid.New().String()},
		"duplicate id": {skills[0].ID, skills[1].ID, skills[1].ID},
		"extra id":     {skills[0].ID, skills[1].ID, skills[2].ID, uuid.New().String()},
	}

	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			err := repo.Reorder(testOwnerID, ids)
			require.ErrorIs(t, err, ErrOrderedSetMismatch)

			// Nothing was applied.
			require.Equal(t, before, ordersByID(t, database, skillsTable))
		})
	}
}

func TestContactAppendAtTail(t *testing.T) {
	database := newTestDB(t)
	repo := NewContactRepository(database)

	first := newContact("email", "me@example.com")
	second := newContact("github", "ghuser")

	require.NoError(t, repo.Create(first, 8))
	require.NoError(t, repo.Create(second, 8))

	orders := ordersByID(t, database, contactsTable)
	require.Equal(t, 0, orders[first.ID])
	require.Equal(t, 1, orders[second.ID])
}

func TestContactCapacityCeiling(t *testing.T) {
	database := newTestDB(t)
	repo := NewContactRepository(database)

	const max = 2
	require.NoError(t, repo.Create(newContact("email", "a"), max))
	require.NoError(t, repo.Create(newContact("phone", "b"), max))

	err := repo.Create(newContact("github", "c"), max)
	require.ErrorIs(t, err, ErrContactLimitReached)

	// Count unchanged.
	orders := ordersByID(t, database, contactsTable)
	require.Len(t, orders, max)
	requireDense(t, orders)
}

func TestContactDeleteAndCompact(t *testing.T) {
	database := newTestDB(t)
	repo := NewContactRepository(database)

	contacts := []*model.Contact{
		newContact("email", "a"),
		newContact("phone", "b"),
		newContact("github", "c"),
		newContact("linkedin", "d"),
	}
	for _, c := range contacts {
		require.NoError(t, repo.Create(c, 8))
	}

	// Delete the row at order 1.
	require.NoError(t, repo.Delete(contacts[1].ID))

	orders := ordersByID(t, database, contactsTable)
	require.Equal(t, 0, orders[contacts[0].ID])
	require.Equal(t, 1, orders[contacts[2].ID])
	require.Equal(t, 2, orders[contacts[3].ID])
	requireDense(t, orders)
}

func TestOrderedInvariantSurvivesMixedMutations(t *testing.T) {
	database := newTestDB(t)
	repo := NewPortfolioItemRepository(database)

	newItem := func(title string) *model.PortfolioItem {
		now := time.Now()
		return &model.PortfolioItem{
			ID:          uuid.New().String(),
			UserID:      testOwnerID,
			Title:       title,
			Description: "d",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	items := []*model.PortfolioItem{newItem("p1"), newItem("p2"), newItem("p3"), newItem("p4"), newItem("p5")}
	for _, item := range items {
		require.NoError(t, repo.Create(item))
	}
	requireDense(t, ordersByID(t, database, portfolioItemsTable))

	require.NoError(t, repo.Delete(items[2].ID))
	requireDense(t, ordersByID(t, database, portfolioItemsTable))

	require.NoError(t, repo.Create(newItem("p6")))
	requireDense(t, ordersByID(t, database, portfolioItemsTable))

	require.NoError(t, repo.Delete(items[4].ID))
	require.NoError(t, repo.Delete(items[0].ID))
	requireDense(t, ordersByID(t, database, portfolioItemsTable))
}

func TestPortfolioItemTitleExists(t *testing.T) {
	database := newTestDB(t)
	repo := NewPortfolioItemRepository(database)

	now := time.Now()
	item := &model.PortfolioItem{
		ID:          uuid.New().String(),
		UserID:      testOwnerID,
		Title:       "My Project",
		Description: "d",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.Create(item))

	exists, err := repo.TitleExists(testOwnerID, "My Project", "")
	require.NoError(t, err)
	require.True(t, exists)

	// The row itself is excluded when updating.
	exists, err = repo.TitleExists(testOwnerID, "My Project", item.ID)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.TitleExists(testOwnerID, "Other", "")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestAttachAndDetachSkill(t *testing.T) {
	database := newTestDB(t)
	itemRepo := NewPortfolioItemRepository(database)
	skillRepo := NewSkillRepository(database)

	now := time.Now()
	item := &model.PortfolioItem{
		ID:          uuid.New().String(),
		UserID:      testOwnerID,
		Title:       "My Project",
		Description: "d",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, itemRepo.Create(item))

	skill := newSkill("Go")
	require.NoError(t, skillRepo.Create(skill))

	require.NoError(t, itemRepo.AttachSkill(item.ID, skill.ID))
	// Attaching twice is a no-op, not an error.
	require.NoError(t, itemRepo.AttachSkill(item.ID, skill.ID))

	extended, err := itemRepo.ExtendedByID(item.ID)
	require.NoError(t, err)
	require.Len(t, extended.Skills, 1)
	require.Equal(t, skill.ID, extended.Skills[0].ID)

	require.NoError(t, itemRepo.DetachSkill(item.ID, skill.ID))
	extended, err = itemRepo.ExtendedByID(item.ID)
	require.NoError(t, err)
	require.Empty(t, extended.Skills)
}
