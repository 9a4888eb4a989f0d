package repo

import (
	"fmt"

	"gorm.io/gorm"
)

type GormDBCli struct {
	db *gorm.DB
}

type InterGormDBCli interface {
	Create(table, value interface{}) error
	Update(value Update) error
	Updates(value Updates) error
	Delete(value Delete) error
	// Tx 在单个事务内执行多步写操作
	// 约束检查后的落库（排班 + 豁免台账、换班审批的三步写）必须整体原子。
	Tx(fn func(tx *gorm.DB) error) error
}

func NewInterGormDBCli(db *gorm.DB) InterGormDBCli {
	return &GormDBCli{
		db: db,
	}
}

// Create 插入数据，value 需传指针
func (g GormDBCli) Create(table, value interface{}) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		return tx.Model(table).Create(value).Error
	}, "数据写入失败")
}

// Update 更新单条数据
func (g GormDBCli) Update(value Update) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Update(value.Column, value.Value).Error
	}, "数据更新失败")
}

// Updates 更新多条数据
func (g GormDBCli) Updates(value Updates) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Updates(value.Updates).Error
	}, "数据更新失败")
}

// Delete 删除数据
func (g GormDBCli) Delete(value Delete) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Delete(value.Table).Error
	}, "数据删除失败")
}

// Tx 执行多步事务
// 不包装回调返回的错误：服务层依赖原始错误类型做业务分支。
func (g GormDBCli) Tx(fn func(tx *gorm.DB) error) error {
	return g.db.Transaction(fn)
}

// executeTransaction 执行事务并处理错误
func (g GormDBCli) executeTransaction(operation func(tx *gorm.DB) error, errorMessage string) error {
	tx := g.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("事务启动失败, err: %s", tx.Error)
	}

	if err := operation(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("%s -> %s", errorMessage, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("事务提交失败, err: %s", err)
	}

	return nil
}

// Update 定义更新单个字段的结构
type Update struct {
	Table  interface{}
	Where  map[string]interface{}
	Column string
	Value  interface{}
}

// Updates 定义更新多个字段的结构
type Updates struct {
	Table   interface{}
	Where   map[string]interface{}
	Updates interface{}
}

// Delete 定义删除数据的结构
type Delete struct {
	Table interface{}
	Where map[string]interface{}
}
