// Package domain defines the persistence models for users, recipes, comments,
// and favorites. These types are mapped with GORM and form the core data layer
// of the recipe-sharing application.
package domain

import "time"

// User represents a registered account. The email is stored lowercased so
// lookups are case-insensitive, and the password is stored only as a bcrypt
// hash (never serialized to JSON).
//
// Deleting a user cascades to every recipe, comment, and favorite they own.
type User struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Email        string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Recipe is a user-authored recipe. Only the owner may update or delete it;
// deleting a recipe cascades to its comments and favorites.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the recipe owner; indexed for listing.
//   - Title / Ingredients / Steps: free-text recipe content.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Recipe struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"owner_id"    gorm:"type:char(36);not null;index:idx_user_recipes"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null"`
	Ingredients string    `json:"ingredients" gorm:"type:text;not null"`
	Steps       string    `json:"steps"       gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"  gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// User is the owning account. Recipes are cascade-deleted when their
	// owner is removed.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// Comment is a user remark attached to a recipe. Only its author may edit or
// delete it, and it disappears automatically with its parent recipe.
type Comment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	RecipeID  string    `json:"recipe_id"  gorm:"type:char(36);not null;index:idx_recipe_comments,priority:1"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_recipe_comments,priority:2"`

	// Recipe is the parent recipe; comment rows are cascade-deleted with it.
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	// User is the comment author; rows are cascade-deleted with the account.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Favorite is the join entity marking a recipe as favorited by a user.
// A (user_id, recipe_id) pair is unique, enforced by the database schema.
// The row is removed when either side of the relation is deleted.
type Favorite struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index;uniqueIndex:ux_favorites_user_recipe"`
	RecipeID  string    `json:"recipe_id"  gorm:"type:char(36);not null;index;uniqueIndex:ux_favorites_user_recipe"`
	CreatedAt time.Time `json:"created_at"`

	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }
