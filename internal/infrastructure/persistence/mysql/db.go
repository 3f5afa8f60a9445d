package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiaolin/libfund/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&BookModel{},
		&BookingModel{},
	)
}

// UserModel GORM读者模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. 外部会话ID作为主键,不使用自增(由对话层分配)
type UserModel struct {
	ChatID      int64     `gorm:"primaryKey;autoIncrement:false;comment:外部会话ID"`
	FullName    string    `gorm:"size:150;not null;comment:姓名(三个词)"`
	Age         int       `gorm:"not null;comment:年龄"`
	PhoneNumber int64     `gorm:"not null;comment:11位手机号"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AuthorModel GORM作者模型
// 作者按姓名去重,与图书多对多关联
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:150;not null;comment:作者姓名"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN-10和ISBN-13均有唯一索引,防止重复入藏
// 2. count_in_fund是可借副本台账,total_copies是入藏总数上限
// 3. 评分均值用double存储(加权滑动均值,无明细表)
// 4. language加索引支持按语种浏览
type BookModel struct {
	ID              uint          `gorm:"primaryKey"`
	Title           string        `gorm:"index;size:300;not null;comment:书名"`
	Authors         []AuthorModel `gorm:"many2many:book_authors;joinForeignKey:BookID;joinReferences:AuthorID"`
	ISBN            string        `gorm:"uniqueIndex;size:10;not null;comment:ISBN-10"`
	ISBN13          string        `gorm:"uniqueIndex;column:isbn13;size:13;not null;comment:ISBN-13"`
	Language        string        `gorm:"index;size:50;not null;comment:语种"`
	NumPages        int           `gorm:"comment:页数"`
	Publisher       string        `gorm:"size:150;comment:出版社"`
	PublicationDate time.Time     `gorm:"comment:出版日期"`
	AgeLimit        int           `gorm:"default:0;comment:年龄限制"`
	AverageRating   float64       `gorm:"default:0;comment:平均评分"`
	RatingsCount    int           `gorm:"default:0;comment:评分次数"`
	PickUpCount     int           `gorm:"default:0;comment:累计取书次数"`
	CountInFund     int           `gorm:"default:0;comment:当前可借副本数"`
	TotalCopies     int           `gorm:"default:0;comment:入藏总副本数"`
	CreatedAt       time.Time     `gorm:"comment:创建时间"`
	UpdatedAt       time.Time     `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BookingModel GORM预订模型
// 设计说明:
// 1. BookingNo有唯一索引(业务主键)
// 2. Status使用int存储(1已预订2已取书3已归还4已取消)
// 3. user_chat_id+status复合索引支撑"一人一订"检查和生效预订查询
// 4. 预订记录从不删除(需求分析依赖完整历史),无软删除字段
type BookingModel struct {
	ID              uint       `gorm:"primaryKey"`
	BookingNo       string     `gorm:"uniqueIndex;size:32;not null;comment:预订号"`
	UserChatID      int64      `gorm:"index:idx_user_status;not null;comment:读者外部会话ID"`
	BookID          uint       `gorm:"index;not null;comment:图书ID"`
	BookingDate     time.Time  `gorm:"index;not null;comment:预订时间"`
	BookingDeadline time.Time  `gorm:"not null;comment:取书截止时间"`
	PickUpDate      *time.Time `gorm:"comment:取书时间"`
	ReturnDate      *time.Time `gorm:"comment:归还时间"`
	Status          int        `gorm:"index:idx_user_status;type:tinyint;default:1;comment:预订状态(1已预订2已取书3已归还4已取消)"`
	CreatedAt       time.Time  `gorm:"comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookingModel) TableName() string {
	return "bookings"
}
